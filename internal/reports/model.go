package reports

import (
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
)

const (
	ReportTypeActivity     = "activity"
	ReportTypeDirectory    = "directory"
	ReportTypeApplications = "applications"

	// Report format constants
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"

	mimeCSV   = "text/csv"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF   = "application/pdf"
)

// ReportData holds the rows for whichever report is being exported.
type ReportData struct {
	Activities   []auditlog.Activity
	Members      []hotel.Application
	Applications []hotel.Application
}

// File is an exported report ready to be streamed to the client.
type File struct {
	Data     []byte
	Filename string
	MIME     string
}

// NormalizeFormat accepts the aliases the console sends.
func NormalizeFormat(format string) string {
	switch format {
	case "xlsx", "excel":
		return FormatExcel
	case "", "pdf":
		return FormatPDF
	case "csv":
		return FormatCSV
	}
	return format
}
