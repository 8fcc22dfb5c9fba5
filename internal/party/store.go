// Package party loads billing parties from a flat directory of JSON
// files, one file per party keyed by identifier.
package party

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads <dir>/<id>.json. No caching; every run reads fresh.
func (s *Store) Load(id string) (domain.Party, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Party{}, fmt.Errorf("empty party identifier: %w", domain.ErrPartyNotFound)
	}

	path := filepath.Join(s.dir, id+".json")
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Party{}, fmt.Errorf("party %q (%s): %w", id, path, domain.ErrPartyNotFound)
	}
	if err != nil {
		return domain.Party{}, fmt.Errorf("read party %q: %w", id, err)
	}

	var p domain.Party
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.Party{}, fmt.Errorf("parse party file %s: %w", path, err)
	}
	p.ID = id
	if strings.TrimSpace(p.Name) == "" {
		return domain.Party{}, fmt.Errorf("party file %s has no name", path)
	}
	return p, nil
}
