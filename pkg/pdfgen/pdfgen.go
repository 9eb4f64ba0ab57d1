package pdfgen

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ContractData carries the fields rendered into an employment contract PDF.
type ContractData struct {
	EmployeeName string
	Email        string
	ContractType string
	StartDate    *time.Time
	EndDate      *time.Time
	Salary       decimal.Decimal
	Currency     string
	Benefits     []string
}

// InvoiceData carries the fields rendered into an invoice PDF.
type InvoiceData struct {
	Number         string
	BuyerName      string
	IssueDate      time.Time
	PaymentDueDate time.Time
	GrossAmount    decimal.Decimal
	NetAmount      *decimal.Decimal
	TaxAmount      *decimal.Decimal
	Currency       string
	PaymentDetails string
}

const dateLayout = "2006-01-02"

// RenderContract writes an employment contract PDF to w.
func RenderContract(w io.Writer, data ContractData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Employment Contract")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	row(pdf, "Employee", data.EmployeeName)
	row(pdf, "Email", data.Email)
	row(pdf, "Contract type", data.ContractType)
	row(pdf, "Start date", formatDate(data.StartDate))
	row(pdf, "End date", formatDate(data.EndDate))
	row(pdf, "Salary", fmt.Sprintf("%s %s", data.Salary.StringFixed(2), data.Currency))

	if len(data.Benefits) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Benefits")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, b := range data.Benefits {
			pdf.Cell(0, 6, "- "+b)
			pdf.Ln(6)
		}
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on %s", time.Now().Format(dateLayout)))

	return pdf.Output(w)
}

// RenderInvoice writes an invoice PDF to w.
func RenderInvoice(w io.Writer, data InvoiceData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, fmt.Sprintf("Invoice %s", data.Number))
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	row(pdf, "Billed to", data.BuyerName)
	row(pdf, "Issue date", data.IssueDate.Format(dateLayout))
	row(pdf, "Payment due", data.PaymentDueDate.Format(dateLayout))
	if data.NetAmount != nil {
		row(pdf, "Net amount", fmt.Sprintf("%s %s", data.NetAmount.StringFixed(2), data.Currency))
	}
	if data.TaxAmount != nil {
		row(pdf, "Tax amount", fmt.Sprintf("%s %s", data.TaxAmount.StringFixed(2), data.Currency))
	}
	row(pdf, "Gross amount", fmt.Sprintf("%s %s", data.GrossAmount.StringFixed(2), data.Currency))
	if data.PaymentDetails != "" {
		row(pdf, "Payment", data.PaymentDetails)
	}

	return pdf.Output(w)
}

func row(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}
