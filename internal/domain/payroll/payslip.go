package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderPayslip lays out one salary summary as a single A4 page.
func RenderPayslip(sum Summary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", sum.EmployeeName))
	pdf.Ln(7)
	if sum.DepartmentName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Department: %s", *sum.DepartmentName))
		pdf.Ln(7)
	}
	if sum.DesignationName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Designation: %s", *sum.DesignationName))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", sum.FromDate, sum.ToDate))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Attendance")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	days := [][2]string{
		{"Total days", fmt.Sprint(sum.TotalDays)},
		{"Present", fmt.Sprint(sum.PresentDays)},
		{"Late", fmt.Sprint(sum.LateDays)},
		{"Early exit", fmt.Sprint(sum.EarlyExitDays)},
		{"Leave", fmt.Sprint(sum.LeaveDays)},
		{"Holiday", fmt.Sprint(sum.HolidayDays)},
		{"Off day", fmt.Sprint(sum.OffDays)},
		{"Absent", fmt.Sprint(sum.AbsentDays)},
	}
	for _, row := range days {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Salary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	amounts := []struct {
		label string
		value decimal.Decimal
	}{
		{"Base salary", sum.BaseSalary},
		{"Daily salary", sum.DailySalary},
		{"Gross salary", sum.GrossSalary},
		{"Late deduction", sum.LateSalaryDeduction},
		{"Net payable", sum.NetPayable},
		{"Loan outstanding", sum.LoanOutstanding},
		{"TDS", sum.NewTDS},
	}
	for _, row := range amounts {
		pdf.CellFormat(60, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.value.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func PayslipFilename(sum Summary) string {
	return fmt.Sprintf("payslip-%s-%04d-%02d.pdf", sum.EmployeeUUID, sum.Year, sum.Month)
}
