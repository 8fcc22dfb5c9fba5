// Package editor round-trips an invoice document through the user's
// text editor via a temporary file.
package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

// Edit writes doc to a temp file, runs the editor command on it and
// blocks until it exits, then re-parses the file. On any failure the
// original doc is returned unchanged next to a wrapped ErrEditAborted,
// and the temp file is removed on every path.
func Edit(doc domain.Document, editorCmd string) (domain.Document, error) {
	fields := strings.Fields(editorCmd)
	if len(fields) == 0 {
		return doc, fmt.Errorf("no editor configured: %w", domain.ErrEditAborted)
	}

	f, err := os.CreateTemp("", "invoicer-edit-*.json")
	if err != nil {
		return doc, fmt.Errorf("create edit file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		f.Close()
		return doc, fmt.Errorf("encode document for editing: %w", err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return doc, fmt.Errorf("write edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		return doc, fmt.Errorf("write edit file: %w", err)
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return doc, fmt.Errorf("editor %q failed: %v: %w", editorCmd, err, domain.ErrEditAborted)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read edited file: %v: %w", err, domain.ErrEditAborted)
	}

	var out domain.Document
	if err := json.Unmarshal(edited, &out); err != nil {
		return doc, fmt.Errorf("edited document is not valid: %v: %w", err, domain.ErrEditAborted)
	}

	// Totals are derived; whatever the edit left in them is discarded.
	out.Recalculate()
	return out, nil
}
