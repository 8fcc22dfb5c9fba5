// Package render turns an assembled invoice document into its output
// artifacts: a PDF, an HTML snapshot, and a JSON snapshot.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      background: #f7f9fc;
    }
    .invoice-card {
      background: #ffffff;
      max-width: 760px;
      margin: 0 auto;
      padding: 60px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header { display: flex; justify-content: space-between; margin-bottom: 40px; }
    .header h1 { margin: 0; font-size: 24px; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 6px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .value { font-size: 14px; line-height: 1.5; }
    .meta-grid { display: flex; justify-content: space-between; margin-bottom: 40px; gap: 20px; }
    .col { flex: 1; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
    }
    td { padding: 12px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; vertical-align: top; }
    .td-right { text-align: right; }
    .totals { display: flex; flex-direction: column; align-items: flex-end; }
    .total-row { display: flex; justify-content: space-between; width: 250px; padding: 6px 0; font-size: 14px; }
    .total-final { border-top: 1px solid #e3e8ee; margin-top: 10px; padding-top: 10px; font-weight: 700; font-size: 16px; }
    .footer { margin-top: 60px; font-size: 12px; color: #8792a2; border-top: 1px solid #e3e8ee; padding-top: 20px; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <div class="header">
      <div>
        <h1>Invoice</h1>
        <div class="label" style="margin-top: 12px;">Invoice number</div>
        <div class="value">{{.Number}}</div>
      </div>
      <div class="value" style="text-align: right;">
        <strong>{{.Supplier.Name}}</strong><br>
        {{.Supplier.Address}}<br>
        {{if .Supplier.TaxID}}Tax ID {{.Supplier.TaxID}}<br>{{end}}
        {{.Supplier.Email}}
      </div>
    </div>

    <div class="meta-grid">
      <div class="col">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Client.Name}}</strong><br>
          {{.Client.Address}}<br>
          {{if .Client.TaxID}}Tax ID {{.Client.TaxID}}{{end}}
        </div>
      </div>
      <div class="col" style="flex: 0 0 200px;">
        <div class="label">Date issued</div>
        <div class="value">{{formatDate .IssueDate}}</div>
        <div class="label" style="margin-top: 16px;">Date due</div>
        <div class="value">{{formatDate .DueDate}}</div>
        {{if not .PeriodFrom.IsZero}}
        <div class="label" style="margin-top: 16px;">Service period</div>
        <div class="value">{{formatDate .PeriodFrom}} &ndash; {{formatDate .PeriodTo}}</div>
        {{end}}
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th style="width: 50%;">Description</th>
          <th class="td-right">Qty</th>
          <th class="td-right">Unit price</th>
          <th class="td-right">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="td-right">{{formatQuantity .Quantity}}</td>
          <td class="td-right">{{formatMoney .UnitRate $.Currency}}</td>
          <td class="td-right">{{formatMoney .Total $.Currency}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="total-row total-final">
        <span>Total</span>
        <span>{{formatMoney .Total .Currency}}</span>
      </div>
    </div>

    {{if .Supplier.Bank}}
    <div class="footer">Payment details: {{.Supplier.Bank}}</div>
    {{end}}
  </div>
</body>
</html>
`

var htmlTpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"formatMoney":    formatMoney,
	"formatDate":     formatDate,
	"formatQuantity": formatQuantity,
}).Parse(invoiceHTMLTemplate))

// HTML renders the document as a standalone HTML page.
func HTML(doc domain.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %v: %w", err, domain.ErrRender)
	}
	return buf.Bytes(), nil
}

func formatMoney(amount decimal.Decimal, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return amount.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}

func formatDate(value domain.Date) string {
	if value.IsZero() {
		return "-"
	}
	return value.String()
}

func formatQuantity(value decimal.Decimal) string {
	return value.String()
}
