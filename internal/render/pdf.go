package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	marotocore "github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/smallbiznis/invoicer/internal/invoice/domain"
)

// PDF renders the document into a paginated invoice layout.
func PDF(doc domain.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Invoice number: "+doc.Number, props.Text{Top: 0}),
			text.New("Date of issue: "+formatDate(doc.IssueDate), props.Text{Top: 5}),
			text.New("Date due: "+formatDate(doc.DueDate), props.Text{Top: 10}),
			text.New(servicePeriod(doc), props.Text{Top: 15}),
		),
		col.New(6),
	)

	m.AddRow(40,
		col.New(6).Add(partyLines(doc.Supplier, "")...),
		col.New(6).Add(partyLines(doc.Client, "Bill to")...),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range doc.Items {
		m.AddRow(12,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, formatQuantity(item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatMoney(item.UnitRate, doc.Currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, formatMoney(item.Total, doc.Currency), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(12,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, formatMoney(doc.Total, doc.Currency), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if doc.Supplier.Bank != "" {
		m.AddRow(20,
			text.NewCol(12, "Payment details: "+doc.Supplier.Bank, props.Text{Size: 9, Top: 6}),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %v: %w", err, domain.ErrRender)
	}
	return out.GetBytes(), nil
}

func partyLines(p domain.Party, heading string) []marotocore.Component {
	var lines []marotocore.Component
	top := 0.0
	if heading != "" {
		lines = append(lines, text.New(heading, props.Text{Style: fontstyle.Bold, Top: top}))
		top += 5
	}
	lines = append(lines, text.New(p.Name, props.Text{Style: fontstyle.Bold, Top: top}))
	top += 5
	if p.Address != "" {
		lines = append(lines, text.New(p.Address, props.Text{Top: top}))
		top += 5
	}
	if p.TaxID != "" {
		lines = append(lines, text.New("Tax ID "+p.TaxID, props.Text{Top: top}))
		top += 5
	}
	if p.Email != "" {
		lines = append(lines, text.New(p.Email, props.Text{Top: top}))
	}
	return lines
}

func servicePeriod(doc domain.Document) string {
	if doc.PeriodFrom.IsZero() && doc.PeriodTo.IsZero() {
		return ""
	}
	return fmt.Sprintf("Service period: %s - %s", formatDate(doc.PeriodFrom), formatDate(doc.PeriodTo))
}
