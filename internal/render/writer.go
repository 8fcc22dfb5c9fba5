package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smallbiznis/invoicer/internal/asana"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

// Write renders and writes the document's three artifacts to dir as
// <supplier>_<client>_<number>.{json,html,pdf} and returns the PDF
// path. When fetched tasks are present a companion
// <prefix>_asana.{json,html,pdf} attachment set is written next to
// the invoice.
func Write(doc domain.Document, tasks []asana.Task, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoices directory %s: %v: %w", dir, err, domain.ErrRender)
	}
	prefix := filepath.Join(dir, fmt.Sprintf("%s_%s_%s", doc.SupplierID, doc.ClientID, doc.Number))

	snapshot, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json snapshot: %v: %w", err, domain.ErrRender)
	}
	if err := writeFile(prefix+".json", snapshot); err != nil {
		return "", err
	}

	html, err := HTML(doc)
	if err != nil {
		return "", err
	}
	if err := writeFile(prefix+".html", html); err != nil {
		return "", err
	}

	pdf, err := PDF(doc)
	if err != nil {
		return "", err
	}
	if err := writeFile(prefix+".pdf", pdf); err != nil {
		return "", err
	}

	if len(tasks) > 0 {
		if err := writeAttachment(prefix, doc, tasks); err != nil {
			return "", err
		}
	}
	return prefix + ".pdf", nil
}

func writeAttachment(prefix string, doc domain.Document, tasks []asana.Task) error {
	snapshot, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode attachment snapshot: %v: %w", err, domain.ErrRender)
	}
	if err := writeFile(prefix+"_asana.json", snapshot); err != nil {
		return err
	}

	html, err := AttachmentHTML(doc, tasks)
	if err != nil {
		return err
	}
	if err := writeFile(prefix+"_asana.html", html); err != nil {
		return err
	}

	pdf, err := AttachmentPDF(doc, tasks)
	if err != nil {
		return err
	}
	return writeFile(prefix+"_asana.pdf", pdf)
}

func writeFile(path string, b []byte) error {
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %v: %w", path, err, domain.ErrRender)
	}
	return nil
}
