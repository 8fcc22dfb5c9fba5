package party

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoad(t *testing.T) {
	dir := t.TempDir()
	body := `{"name":"Me Ltd","address":"1 Main St","tax_id":"IT123","bank":"IBAN IT00","email":"me@example.com"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "me.json"), []byte(body), 0o644))

	store := NewStore(dir)

	p, err := store.Load("me")
	require.NoError(t, err)
	assert.Equal(t, "me", p.ID)
	assert.Equal(t, "Me Ltd", p.Name)
	assert.Equal(t, "IT123", p.TaxID)
	assert.Equal(t, "IBAN IT00", p.Bank)
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("nobody")
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)

	_, err = store.Load("")
	assert.ErrorIs(t, err, domain.ErrPartyNotFound)
}

func TestStoreLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "anon.json"), []byte(`{"address":"nowhere"}`), 0o644))

	store := NewStore(dir)

	_, err := store.Load("bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPartyNotFound)

	_, err = store.Load("anon")
	assert.ErrorContains(t, err, "no name")
}
