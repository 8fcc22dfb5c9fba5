package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	issued := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	got, err := Format(DefaultNumberTemplate, issued, 41)
	require.NoError(t, err)
	assert.Equal(t, "INV-202403-0041", got)

	got, err = Format("{YYYY}-{MM}", issued, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", got)

	_, err = Format("", issued, 1)
	assert.Error(t, err)

	_, err = Format("{NOPE}", issued, 1)
	assert.Error(t, err)

	_, err = Format("{SEQ}", issued, 0)
	assert.Error(t, err)
}

func TestNext(t *testing.T) {
	cases := []struct {
		in   string
		out  string
		fail bool
	}{
		{in: "2024-03", out: "2024-04"},
		{in: "2024-12", out: "2025-01"},
		{in: "41", out: "42"},
		{in: "9", out: "10"},
		{in: "INV-0041", out: "INV-0042"},
		{in: "INV-202403-0099", out: "INV-202403-0100"},
		{in: " 2024-03 ", out: "2024-04"},
		{in: "", fail: true},
		{in: "draft", fail: true},
	}
	for _, tc := range cases {
		got, err := Next(tc.in)
		if tc.fail {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.out, got, "input %q", tc.in)
	}
}
