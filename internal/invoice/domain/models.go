// Package domain contains the typed records an invoice run passes
// between stages: parties, line items, and the invoice document itself.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Party is a billing entity, either the supplier or the client.
// Loaded fresh from the parties directory on every run.
type Party struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
	Bank    string `json:"bank"`
	Email   string `json:"email,omitempty"`
}

// LineItem is one billable row. Total is always Quantity * UnitRate;
// Document.Recalculate enforces that before rendering.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
	Total       decimal.Decimal `json:"total"`
}

// Document is the assembled invoice. It is owned by the current run
// and only ever persisted as the transient edit file and the final
// rendered outputs.
type Document struct {
	Number     string `json:"number"`
	IssueDate  Date   `json:"issue_date"`
	DueDate    Date   `json:"due_date"`
	PeriodFrom Date   `json:"period_from"`
	PeriodTo   Date   `json:"period_to"`

	SupplierID string `json:"supplier"`
	ClientID   string `json:"client"`
	Supplier   Party  `json:"supplier_party"`
	Client     Party  `json:"client_party"`

	Currency string          `json:"currency"`
	Items    []LineItem      `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

// Recalculate recomputes every line total and the grand total.
// Called after assembly and again after any interactive edit.
func (d *Document) Recalculate() {
	total := decimal.Zero
	for i := range d.Items {
		d.Items[i].Total = d.Items[i].Quantity.Mul(d.Items[i].UnitRate)
		total = total.Add(d.Items[i].Total)
	}
	d.Total = total
}

// Validate checks the document is complete enough to render.
func (d *Document) Validate() error {
	var problems []string

	if strings.TrimSpace(d.Number) == "" {
		problems = append(problems, "invoice number is empty")
	}
	if strings.TrimSpace(d.SupplierID) == "" {
		problems = append(problems, "supplier is empty")
	}
	if strings.TrimSpace(d.ClientID) == "" {
		problems = append(problems, "client is empty")
	}
	if strings.TrimSpace(d.Supplier.Name) == "" {
		problems = append(problems, fmt.Sprintf("supplier %q is not resolved to a party", d.SupplierID))
	}
	if strings.TrimSpace(d.Client.Name) == "" {
		problems = append(problems, fmt.Sprintf("client %q is not resolved to a party", d.ClientID))
	}
	if d.IssueDate.IsZero() {
		problems = append(problems, "issue date is missing")
	}
	if len(d.Items) == 0 {
		problems = append(problems, "invoice has no line items")
	}
	for i, item := range d.Items {
		if strings.TrimSpace(item.Description) == "" {
			problems = append(problems, fmt.Sprintf("item %d has no description", i+1))
		}
		if item.Quantity.IsNegative() || item.UnitRate.IsNegative() {
			problems = append(problems, fmt.Sprintf("item %d has a negative quantity or rate", i+1))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrValidation, strings.Join(problems, "\n- "))
	}
	return nil
}

const dateLayout = "2006-01-02"

// dayFirstLayout matches the dd.mm.yyyy dates used in hand-edited
// period fields.
const dayFirstLayout = "02.01.2006"

// Date is a calendar day serialized as "2006-01-02". The day-first
// form "02.01.2006" is accepted on input.
type Date struct {
	time.Time
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// AddMonths returns the date advanced by n calendar months, clamped
// to the last day of the target month so that e.g. Jan 31 plus one
// month is Feb 29, not Mar 2.
func (d Date) AddMonths(n int) Date {
	year, month, day := d.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	// Day 0 of the following month is the last day of this one.
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return Date{Time: time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{dateLayout, dayFirstLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q, want %s or %s", s, dateLayout, dayFirstLayout)
}
