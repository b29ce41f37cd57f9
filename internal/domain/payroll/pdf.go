package payroll

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF writes a one-page payslip PDF to w. The amounts are rendered
// exactly as normalized, upstream remains the source of truth for the
// arithmetic.
func RenderPDF(w io.Writer, payslip Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", payslip.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", payslip.Period))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", payslip.Status))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic: %.2f", payslip.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %.2f", payslip.GrossSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", payslip.Deductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", payslip.NetSalary))
	return pdf.Output(w)
}
