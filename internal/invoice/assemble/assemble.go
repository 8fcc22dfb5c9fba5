// Package assemble merges the input file, an optional prior invoice,
// and fetched remote tasks into one normalized invoice document.
package assemble

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicer/internal/asana"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
	"github.com/smallbiznis/invoicer/internal/invoice/format"
)

// Input mirrors the on-disk invoice description file.
type Input struct {
	Supplier   string      `json:"supplier"`
	Client     string      `json:"client"`
	Number     string      `json:"number"`
	IssueDate  domain.Date `json:"issue_date"`
	DueDate    domain.Date `json:"due_date"`
	PeriodFrom domain.Date `json:"period_from"`
	PeriodTo   domain.Date `json:"period_to"`
	Currency   string      `json:"currency"`

	// Period controls how far increment mode advances dates:
	// "monthly" (default), "quarterly", or "yearly".
	Period string `json:"period,omitempty"`

	// TaskQuantity is the quantity booked per fetched task.
	// Zero means one unit per task.
	TaskQuantity decimal.Decimal `json:"task_quantity"`

	Items []InputItem `json:"items"`
}

type InputItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitRate    decimal.Decimal `json:"unit_rate"`
}

// Options carries run-level inputs resolved by the CLI driver.
type Options struct {
	Supplier    domain.Party
	Client      domain.Party
	Currency    string
	DefaultRate decimal.Decimal

	// NumberTemplate formats a fresh invoice number when the input
	// leaves it empty outside increment mode. Empty means the
	// package default.
	NumberTemplate string
}

// LoadInput reads and parses the invoice description file.
func LoadInput(path string) (Input, error) {
	var in Input
	if err := readJSON(path, &in); err != nil {
		return Input{}, err
	}
	return in, nil
}

// LoadPrior reads a previously assembled invoice document, as written
// by the renderer's JSON snapshot.
func LoadPrior(path string) (domain.Document, error) {
	var doc domain.Document
	if err := readJSON(path, &doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func readJSON(path string, out any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Period returns the billing period the run covers. In increment mode
// explicit input dates win; otherwise the prior's period advanced by
// one step.
func Period(in Input, prior *domain.Document) (from, to domain.Date) {
	from, to = in.PeriodFrom, in.PeriodTo
	if prior != nil {
		step := periodStep(in.Period)
		if from.IsZero() {
			from = prior.PeriodFrom.AddMonths(step)
		}
		if to.IsZero() {
			to = prior.PeriodTo.AddMonths(step)
		}
	}
	return from, to
}

// Assemble builds the normalized document. With prior set it runs in
// increment mode: the prior's line-item shape carries forward with
// quantities zeroed, the number advances by one, and dates advance by
// the input's period. The input's own seed items are kept in both
// modes, after the carried-forward shape.
func Assemble(in Input, prior *domain.Document, tasks []asana.Task, opts Options) (domain.Document, error) {
	doc := domain.Document{
		Number:     in.Number,
		IssueDate:  in.IssueDate,
		DueDate:    in.DueDate,
		SupplierID: in.Supplier,
		ClientID:   in.Client,
		Supplier:   opts.Supplier,
		Client:     opts.Client,
		Currency:   in.Currency,
	}
	doc.PeriodFrom, doc.PeriodTo = Period(in, prior)
	if doc.Currency == "" {
		doc.Currency = opts.Currency
	}

	if prior != nil {
		if err := increment(&doc, in, prior); err != nil {
			return domain.Document{}, err
		}
	} else if doc.Number == "" {
		tpl := opts.NumberTemplate
		if tpl == "" {
			tpl = format.DefaultNumberTemplate
		}
		number, err := format.Format(tpl, doc.IssueDate.Time, 1)
		if err != nil {
			return domain.Document{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		doc.Number = number
	}

	for _, item := range in.Items {
		doc.Items = append(doc.Items, domain.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitRate:    item.UnitRate,
		})
	}

	taskQty := in.TaskQuantity
	if taskQty.IsZero() {
		taskQty = decimal.NewFromInt(1)
	}
	for _, task := range tasks {
		doc.Items = append(doc.Items, domain.LineItem{
			Description: task.Description(),
			Quantity:    taskQty,
			UnitRate:    opts.DefaultRate,
		})
	}

	doc.Recalculate()
	if err := doc.Validate(); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

func increment(doc *domain.Document, in Input, prior *domain.Document) error {
	step := periodStep(in.Period)

	if doc.Number == "" {
		next, err := format.Next(prior.Number)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		doc.Number = next
	}
	if doc.SupplierID == "" {
		doc.SupplierID = prior.SupplierID
	}
	if doc.ClientID == "" {
		doc.ClientID = prior.ClientID
	}
	if doc.Currency == "" {
		doc.Currency = prior.Currency
	}
	if doc.IssueDate.IsZero() {
		doc.IssueDate = prior.IssueDate.AddMonths(step)
	}
	if doc.DueDate.IsZero() {
		doc.DueDate = prior.DueDate.AddMonths(step)
	}

	// Shape only: descriptions and rates carry forward, quantities
	// are re-derived or filled in during the edit step.
	for _, item := range prior.Items {
		doc.Items = append(doc.Items, domain.LineItem{
			Description: item.Description,
			UnitRate:    item.UnitRate,
			Quantity:    decimal.Zero,
		})
	}
	return nil
}

// periodStep maps the input's period to a month count. Unknown values
// fall back to monthly rather than failing the run.
func periodStep(period string) int {
	switch period {
	case "quarterly":
		return 3
	case "yearly":
		return 12
	default:
		return 1
	}
}
