// Package secrets reads the per-supplier secrets file. Secrets are
// loaded once at startup, read-only, and never written back.
package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Secrets holds the optional remote-service credentials for one
// supplier. A zero value means degraded mode: no task fetch.
type Secrets struct {
	AsanaToken     string `json:"asana_token"`
	AsanaWorkspace string `json:"asana_workspace"`
	DefaultRate    string `json:"default_rate"`
}

// Load reads the secrets file and returns the entry for supplierID.
// A missing file or a missing supplier entry is not an error; the
// tool still works without a token. A present but unparseable file is.
func Load(path, supplierID string) (Secrets, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Secrets{}, nil
	}
	if err != nil {
		return Secrets{}, fmt.Errorf("read secrets file %s: %w", path, err)
	}

	var bySupplier map[string]Secrets
	if err := json.Unmarshal(b, &bySupplier); err != nil {
		return Secrets{}, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	return bySupplier[supplierID], nil
}
