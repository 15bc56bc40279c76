// Package pdf renders business documents (quotations, invoices, receipts)
// as A4 PDFs using maroto.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/packytong/Flowaccount/internal/bahttext"
	"github.com/packytong/Flowaccount/internal/view"
)

type ItemData struct {
	Position    int
	Description string
	Details     string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	Amount      float64
}

type PartyData struct {
	Name    string
	Address string
	TaxID   string
	Branch  string
	Phone   string
	Email   string
}

type DocumentData struct {
	Title           string
	DocNumber       string
	DocDate         string
	DueDate         string
	ReferenceNumber string
	Salesperson     string
	Project         string
	Company         PartyData
	Customer        PartyData
	Items           []ItemData
	Subtotal        float64
	DiscountAmount  float64
	AfterDiscount   float64
	VatEnabled      bool
	VatAmount       float64
	GrandTotal      float64
	WhtEnabled      bool
	WhtPercent      float64
	WhtAmount       float64
	NetTotal        float64
	Notes           string
}

// DocumentPDF renders the document and returns the PDF bytes.
func DocumentPDF(d DocumentData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(10,
		text.NewCol(8, d.Company.Name, props.Text{Style: fontstyle.Bold, Size: 14}),
		text.NewCol(4, d.Title, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Right}),
	)
	companyLine := d.Company.Address
	if d.Company.TaxID != "" {
		companyLine += "  TAX ID " + d.Company.TaxID
		if d.Company.Branch != "" {
			companyLine += " (" + d.Company.Branch + ")"
		}
	}
	m.AddRow(6,
		text.NewCol(8, companyLine, props.Text{Size: 9}),
		text.NewCol(4, d.DocNumber, props.Text{Size: 11, Align: align.Right}),
	)
	m.AddRow(6,
		text.NewCol(8, contactLine(d.Company), props.Text{Size: 9}),
		text.NewCol(4, d.DocDate, props.Text{Size: 9, Align: align.Right}),
	)
	if d.DueDate != "" {
		m.AddRow(5, text.NewCol(12, "Due: "+d.DueDate, props.Text{Size: 9, Align: align.Right}))
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(7, text.NewCol(12, "Customer: "+d.Customer.Name, props.Text{Style: fontstyle.Bold, Size: 10}))
	if d.Customer.Address != "" {
		m.AddRow(5, text.NewCol(12, d.Customer.Address, props.Text{Size: 9}))
	}
	if d.Customer.TaxID != "" {
		m.AddRow(5, text.NewCol(12, "TAX ID "+d.Customer.TaxID, props.Text{Size: 9}))
	}
	meta := ""
	if d.ReferenceNumber != "" {
		meta += "Ref: " + d.ReferenceNumber + "   "
	}
	if d.Salesperson != "" {
		meta += "Salesperson: " + d.Salesperson + "   "
	}
	if d.Project != "" {
		meta += "Project: " + d.Project
	}
	if meta != "" {
		m.AddRow(5, text.NewCol(12, meta, props.Text{Size: 9}))
	}
	m.AddRow(4, line.NewCol(12))

	// items table header
	m.AddRow(7,
		text.NewCol(1, "#", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, it := range d.Items {
		desc := it.Description
		if it.Details != "" {
			desc += " (" + it.Details + ")"
		}
		qty := view.FormatNumber(it.Quantity)
		if it.Unit != "" {
			qty += " " + it.Unit
		}
		m.AddRow(6,
			text.NewCol(1, fmt.Sprintf("%d", it.Position), props.Text{Size: 9}),
			text.NewCol(5, desc, props.Text{Size: 9}),
			text.NewCol(2, qty, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, view.FormatNumber(it.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, view.FormatNumber(it.Amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(4, line.NewCol(12))

	totalRow := func(label string, v float64, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(6,
			text.NewCol(8, "", props.Text{}),
			text.NewCol(2, label, props.Text{Size: 9, Style: style, Align: align.Right}),
			text.NewCol(2, view.FormatNumber(v), props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}
	totalRow("Subtotal", d.Subtotal, false)
	if d.DiscountAmount > 0 {
		totalRow("Discount", d.DiscountAmount, false)
		totalRow("After Discount", d.AfterDiscount, false)
	}
	if d.VatEnabled {
		totalRow("VAT 7%", d.VatAmount, false)
	}
	totalRow("Grand Total", d.GrandTotal, true)
	if d.WhtEnabled {
		totalRow(fmt.Sprintf("WHT %.0f%%", d.WhtPercent), d.WhtAmount, false)
		totalRow("Net Total", d.NetTotal, true)
	}

	if words := bahttext.Text(d.GrandTotal); words != "" {
		m.AddRow(7, text.NewCol(12, "("+words+")", props.Text{Size: 9, Align: align.Center}))
	}
	if d.Notes != "" {
		m.AddRow(4, line.NewCol(12))
		m.AddRow(6, text.NewCol(12, d.Notes, props.Text{Size: 9}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func contactLine(p PartyData) string {
	out := ""
	if p.Phone != "" {
		out += "Tel " + p.Phone
	}
	if p.Email != "" {
		if out != "" {
			out += "  "
		}
		out += p.Email
	}
	return out
}
