package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() domain.Document {
	doc := domain.Document{
		Number:     "2024-03",
		IssueDate:  domain.NewDate(2024, 3, 31),
		SupplierID: "me",
		ClientID:   "client",
		Supplier:   domain.Party{ID: "me", Name: "Me Ltd"},
		Client:     domain.Party{ID: "client", Name: "Client GmbH"},
		Currency:   "EUR",
		Items: []domain.LineItem{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitRate: decimal.NewFromInt(50)},
		},
	}
	doc.Recalculate()
	return doc
}

// scriptEditor writes a shell script to use as the configured editor.
func scriptEditor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestEditNoOpRoundTrip(t *testing.T) {
	doc := sampleDoc()

	got, err := Edit(doc, "true")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestEditAppliesChanges(t *testing.T) {
	// Replace the quantity; the total must be recomputed.
	ed := scriptEditor(t, `sed -i 's/"quantity": "10"/"quantity": "4"/' "$1"`)

	got, err := Edit(sampleDoc(), ed)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Quantity.Equal(decimal.NewFromInt(4)))
	assert.True(t, got.Items[0].Total.Equal(decimal.NewFromInt(200)), "got %s", got.Items[0].Total)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(200)))
}

func TestEditEditorFailure(t *testing.T) {
	doc := sampleDoc()

	got, err := Edit(doc, "false")
	assert.ErrorIs(t, err, domain.ErrEditAborted)
	// The caller keeps the original document.
	assert.Equal(t, doc, got)
}

func TestEditInvalidResult(t *testing.T) {
	ed := scriptEditor(t, `echo "not json" > "$1"`)
	doc := sampleDoc()

	got, err := Edit(doc, ed)
	assert.ErrorIs(t, err, domain.ErrEditAborted)
	assert.Equal(t, doc, got)
}

func TestEditNoEditorConfigured(t *testing.T) {
	_, err := Edit(sampleDoc(), "  ")
	assert.ErrorIs(t, err, domain.ErrEditAborted)
}
