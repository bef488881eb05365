package payroll

import (
	"bytes"
	"fmt"
	"strings"

	"go-ems/internal/employee"
	"go-ems/internal/shared/money"

	"github.com/jung-kurt/gofpdf"
)

const (
	payslipLabelWidth  = 110
	payslipAmountWidth = 60
	payslipRowHeight   = 7
)

// Core PDF fonts are cp1252, so the rupee sign is spelled out.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "₹", "Rs.")
}

func renderPayslip(p *Payroll, empl *employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.Period, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		fmt.Sprintf("Employee: %s (%s)", empl.FullName, empl.EmployeeCode),
		fmt.Sprintf("Department: %s", empl.Department),
		fmt.Sprintf("Period: %s to %s", p.PeriodStart.Format(dateLayout), p.PeriodEnd.Format(dateLayout)),
		fmt.Sprintf("Working days: %d   Leave days: %d   Overtime hours: %s",
			p.WorkingDays, p.LeaveDays, p.OvertimeHours.StringFixed(money.Scale)),
	}
	if p.PayDate != nil {
		header = append(header, "Pay date: "+p.PayDate.Format(dateLayout))
	}
	if p.PaymentReference != nil {
		header = append(header, "Payment reference: "+*p.PaymentReference)
	}
	for _, line := range header {
		pdf.Cell(0, payslipRowHeight, line)
		pdf.Ln(payslipRowHeight)
	}
	pdf.Ln(4)

	var earnings, deductions []PayrollComponent
	for _, c := range p.Components {
		if c.ComponentType == ComponentDeduction {
			deductions = append(deductions, c)
		} else {
			earnings = append(earnings, c)
		}
	}

	writeSection(pdf, "Earnings", earnings, "Total earnings", p.TotalEarnings.StringFixed(money.Scale))
	writeSection(pdf, "Deductions", deductions, "Total deductions", p.TotalDeductions.StringFixed(money.Scale))

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, payslipRowHeight, pdfText("Tax slab: "+p.TaxSlab))
	pdf.Ln(payslipRowHeight + 2)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(payslipLabelWidth, 9, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(payslipAmountWidth, 9, p.NetSalary.StringFixed(money.Scale), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *gofpdf.Fpdf, title string, rows []PayrollComponent, totalLabel, total string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(payslipLabelWidth, 8, title, "B", 0, "L", false, 0, "")
	pdf.CellFormat(payslipAmountWidth, 8, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, r := range rows {
		pdf.CellFormat(payslipLabelWidth, payslipRowHeight, r.ComponentName, "", 0, "L", false, 0, "")
		pdf.CellFormat(payslipAmountWidth, payslipRowHeight, r.Amount.StringFixed(money.Scale), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(payslipLabelWidth, payslipRowHeight, totalLabel, "T", 0, "L", false, 0, "")
	pdf.CellFormat(payslipAmountWidth, payslipRowHeight, total, "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}
