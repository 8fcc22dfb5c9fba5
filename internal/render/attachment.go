package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/smallbiznis/invoicer/internal/asana"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

// The attachment lists the completed tasks backing the invoice's
// remote line items, one artifact set per invoice.

const attachmentHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Completed tasks for invoice {{.Doc.Number}}</title>
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
    h1 { margin: 0 0 6px 0; font-size: 24px; }
    .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      margin-bottom: 30px;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    table { width: 100%; border-collapse: collapse; }
    th {
      text-align: left;
      text-transform: uppercase;
      font-size: 11px;
      color: #8792a2;
      border-bottom: 1px solid #e3e8ee;
      padding: 10px 0;
    }
    td { padding: 12px 0; border-bottom: 1px solid #e3e8ee; font-size: 14px; vertical-align: top; }
    .td-right { text-align: right; white-space: nowrap; }
  </style>
</head>
<body>
  <div class="invoice-card">
    <h1>Completed tasks</h1>
    <div class="label">Invoice {{.Doc.Number}}{{if not .Doc.PeriodFrom.IsZero}} &middot; {{formatDate .Doc.PeriodFrom}} &ndash; {{formatDate .Doc.PeriodTo}}{{end}}</div>

    <table>
      <thead>
        <tr>
          <th style="width: 55%;">Task</th>
          <th>Projects</th>
          <th class="td-right">Completed</th>
        </tr>
      </thead>
      <tbody>
        {{range .Tasks}}
        <tr>
          <td>{{.Name}}</td>
          <td>{{join .Projects}}</td>
          <td class="td-right">{{.CompletedDay}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>
</body>
</html>
`

var attachmentTpl = template.Must(template.New("attachment").Funcs(template.FuncMap{
	"formatDate": formatDate,
	"join":       func(parts []string) string { return strings.Join(parts, ", ") },
}).Parse(attachmentHTMLTemplate))

type attachmentData struct {
	Doc   domain.Document
	Tasks []asana.Task
}

// AttachmentHTML renders the task listing as a standalone HTML page.
func AttachmentHTML(doc domain.Document, tasks []asana.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := attachmentTpl.Execute(&buf, attachmentData{Doc: doc, Tasks: tasks}); err != nil {
		return nil, fmt.Errorf("render attachment html: %v: %w", err, domain.ErrRender)
	}
	return buf.Bytes(), nil
}

// AttachmentPDF renders the task listing as a paginated PDF.
func AttachmentPDF(doc domain.Document, tasks []asana.Task) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Completed tasks", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	subtitle := "Invoice " + doc.Number
	if !doc.PeriodFrom.IsZero() || !doc.PeriodTo.IsZero() {
		subtitle += fmt.Sprintf(", %s - %s", formatDate(doc.PeriodFrom), formatDate(doc.PeriodTo))
	}
	m.AddRow(10,
		text.NewCol(12, subtitle, props.Text{Size: 10}),
	)

	m.AddRow(10,
		text.NewCol(7, "Task", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(3, "Projects", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Completed", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, task := range tasks {
		m.AddRow(12,
			text.NewCol(7, task.Name, props.Text{Size: 9}),
			text.NewCol(3, strings.Join(task.Projects, ", "), props.Text{Size: 9}),
			text.NewCol(2, task.CompletedDay(), props.Text{Size: 9, Align: align.Right}),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate attachment pdf: %v: %w", err, domain.ErrRender)
	}
	return out.GetBytes(), nil
}
