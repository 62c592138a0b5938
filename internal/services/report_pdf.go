package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/repositories"
	"busfleet/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportDocsService renders report aggregates as printable PDFs.
type ReportDocsService struct {
	Reports   ReportsService
	RequestID string
}

// Report kinds accepted by GeneratePDF and the /api/reports endpoint.
var ReportKinds = []string{"summary", "sales", "drivers", "financial", "vehicles", "staff"}

func (s ReportDocsService) GeneratePDF(kind, start, end string) ([]byte, string, error) {
	period := periodLabel(start, end)
	utils.LogEvent(s.RequestID, "reports", "generate_pdf", fmt.Sprintf("kind=%s period=%s", kind, period))

	switch kind {
	case "summary":
		agg, err := s.Reports.Summary(start, end)
		if err != nil {
			return nil, "", err
		}
		return buildSummaryPDF(agg, period)
	case "sales":
		rows, err := s.Reports.Sales(start, end)
		if err != nil {
			return nil, "", err
		}
		return buildSalesPDF(rows, period)
	case "drivers":
		rep, err := s.Reports.Drivers(start, end)
		if err != nil {
			return nil, "", err
		}
		return buildDriversPDF(rep, period)
	case "financial":
		rep, err := s.Reports.Financial(start, end)
		if err != nil {
			return nil, "", err
		}
		return buildFinancialPDF(rep, period)
	case "vehicles":
		rows, err := s.Reports.Vehicles(start, end)
		if err != nil {
			return nil, "", err
		}
		return buildVehiclesPDF(rows, period)
	case "staff":
		rows, err := s.Reports.Staff(start, end)
		if err != nil {
			return nil, "", err
		}
		return buildStaffPDF(rows, period)
	default:
		return nil, "", domain.ValidationError{Field: "type", Msg: "unknown report type"}
	}
}

func newReportPDF(title, period string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strings.ToUpper(title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Period: "+period)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)
	return pdf
}

func finishPDF(pdf *gofpdf.Fpdf, kind string) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("REPORT_%s_%s.pdf", strings.ToUpper(kind), time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func pdfLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(60, 7, label)
	pdf.Cell(0, 7, value)
	pdf.Ln(7)
}

func buildSummaryPDF(agg repositories.SummaryAggregate, period string) ([]byte, string, error) {
	pdf := newReportPDF("Summary Report", period)
	pdfLine(pdf, "Tickets sold", fmt.Sprintf("%d", agg.TicketCount))
	pdfLine(pdf, "Passengers", fmt.Sprintf("%d", agg.PassengerCount))
	pdfLine(pdf, "Total revenue", utils.FormatKip(agg.TotalRevenue))
	pdfLine(pdf, "Cash revenue", utils.FormatKip(agg.CashRevenue))
	pdfLine(pdf, "Transfer revenue", utils.FormatKip(agg.TransferRevenue))
	pdf.Ln(4)
	pdfLine(pdf, "Pending bookings", fmt.Sprintf("%d", agg.PendingBookings))
	pdfLine(pdf, "Approved bookings", fmt.Sprintf("%d", agg.ApprovedBookings))
	pdfLine(pdf, "Rejected bookings", fmt.Sprintf("%d", agg.RejectedBookings))
	pdfLine(pdf, "Expired bookings", fmt.Sprintf("%d", agg.ExpiredBookings))
	return finishPDF(pdf, "summary")
}

func buildSalesPDF(rows []repositories.SalesRow, period string) ([]byte, string, error) {
	pdf := newReportPDF("Sales Report", period)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(35, 7, "Date")
	pdf.Cell(25, 7, "Tickets")
	pdf.Cell(30, 7, "Passengers")
	pdf.Cell(0, 7, "Revenue")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	var total int64
	for _, r := range rows {
		pdf.Cell(35, 6, r.Date)
		pdf.Cell(25, 6, fmt.Sprintf("%d", r.Tickets))
		pdf.Cell(30, 6, fmt.Sprintf("%d", r.Passengers))
		pdf.Cell(0, 6, utils.FormatKip(r.Revenue))
		pdf.Ln(6)
		total += r.Revenue
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Total: "+utils.FormatKip(total))
	return finishPDF(pdf, "sales")
}

func buildDriversPDF(rep DriversReport, period string) ([]byte, string, error) {
	pdf := newReportPDF("Driver Report", period)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(45, 7, "Driver")
	pdf.Cell(25, 7, "Code")
	pdf.Cell(20, 7, "Trips")
	pdf.Cell(25, 7, "Qualifying")
	pdf.Cell(25, 7, "Work days")
	pdf.Cell(0, 7, "Share")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rep.Rows {
		pdf.Cell(45, 6, r.Name)
		pdf.Cell(25, 6, r.EmployeeCode)
		pdf.Cell(20, 6, fmt.Sprintf("%d", r.TotalTrips))
		pdf.Cell(25, 6, fmt.Sprintf("%d", r.CompletedTrips))
		pdf.Cell(25, 6, fmt.Sprintf("%d", r.WorkDays))
		pdf.Cell(0, 6, utils.FormatKip(r.Share))
		pdf.Ln(6)
	}
	pdf.Ln(4)
	b := rep.Breakdown
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Driver pool %s split among %d qualifying driver(s)",
		utils.FormatKip(b.DriverPoolShare), b.QualifiedDriverCount))
	return finishPDF(pdf, "drivers")
}

func buildFinancialPDF(rep FinancialReport, period string) ([]byte, string, error) {
	pdf := newReportPDF("Financial Report", period)
	pdfLine(pdf, "Tickets sold", fmt.Sprintf("%d", rep.TicketCount))
	pdfLine(pdf, "Total revenue", utils.FormatKip(rep.TotalRevenue))
	pdfLine(pdf, "Cash", utils.FormatKip(rep.CashRevenue))
	pdfLine(pdf, "Transfer", utils.FormatKip(rep.TransferRevenue))
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Revenue distribution")
	pdf.Ln(8)
	b := rep.Breakdown
	pdfLine(pdf, "Company share", utils.FormatKip(b.CompanyShare))
	pdfLine(pdf, "Station share", utils.FormatKip(b.StationShare))
	pdfLine(pdf, "Driver pool", utils.FormatKip(b.DriverPoolShare))
	pdfLine(pdf, "Qualified drivers", fmt.Sprintf("%d", b.QualifiedDriverCount))
	pdfLine(pdf, "Per-driver share", utils.FormatKip(b.PerDriverShare))
	return finishPDF(pdf, "financial")
}

func buildVehiclesPDF(rows []repositories.VehicleRow, period string) ([]byte, string, error) {
	pdf := newReportPDF("Vehicle Report", period)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(40, 7, "Registration")
	pdf.Cell(25, 7, "Capacity")
	pdf.Cell(50, 7, "Driver")
	pdf.Cell(25, 7, "Tickets")
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.Cell(40, 6, r.Registration)
		pdf.Cell(25, 6, fmt.Sprintf("%d", r.Capacity))
		pdf.Cell(50, 6, r.DriverName)
		pdf.Cell(25, 6, fmt.Sprintf("%d", r.Tickets))
		pdf.Cell(0, 6, fmt.Sprintf("%d", r.Passengers))
		pdf.Ln(6)
	}
	return finishPDF(pdf, "vehicles")
}

func buildStaffPDF(rows []repositories.StaffRow, period string) ([]byte, string, error) {
	pdf := newReportPDF("Staff Report", period)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(50, 7, "Name")
	pdf.Cell(30, 7, "Role")
	pdf.Cell(30, 7, "Tickets")
	pdf.Cell(0, 7, "Revenue")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.Cell(50, 6, r.Name)
		pdf.Cell(30, 6, r.Role)
		pdf.Cell(30, 6, fmt.Sprintf("%d", r.TicketsSold))
		pdf.Cell(0, 6, utils.FormatKip(r.Revenue))
		pdf.Ln(6)
	}
	return finishPDF(pdf, "staff")
}

func periodLabel(start, end string) string {
	switch {
	case start == "" && end == "":
		return "all time"
	case start == end:
		return start
	default:
		return start + " to " + end
	}
}
