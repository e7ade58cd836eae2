package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
)

// ReportExporter defines the interface for exporting reports in different formats
type ReportExporter interface {
	Export(reportType, format string, data ReportData) (*File, error)
}

type reportExporter struct {
	now func() time.Time
}

func NewReportExporter() ReportExporter {
	return &reportExporter{now: time.Now}
}

func (e *reportExporter) Export(reportType, format string, data ReportData) (*File, error) {
	timestamp := e.now().Format("20060102_150405")

	var table sheet
	switch reportType {
	case ReportTypeActivity:
		table = activitySheet(data.Activities)
	case ReportTypeDirectory:
		table = directorySheet(data.Members)
	case ReportTypeApplications:
		table = applicationsSheet(data.Applications)
	default:
		return nil, fmt.Errorf("unsupported report type: %s", reportType)
	}

	base := fmt.Sprintf("%s_report_%s", reportType, timestamp)
	switch format {
	case FormatExcel:
		b, err := table.excel()
		if err != nil {
			return nil, err
		}
		return &File{Data: b, Filename: base + ".xlsx", MIME: mimeExcel}, nil
	case FormatCSV:
		b, err := table.csv()
		if err != nil {
			return nil, err
		}
		return &File{Data: b, Filename: base + ".csv", MIME: mimeCSV}, nil
	case FormatPDF:
		b, err := table.pdf()
		if err != nil {
			return nil, err
		}
		return &File{Data: b, Filename: base + ".pdf", MIME: mimePDF}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// sheet is a titled table rendered identically to every format.
type sheet struct {
	title     string
	landscape bool
	headers   []string
	widths    []float64 // mm, PDF only
	rows      [][]string
}

//// ============================
/// ROW BUILDERS
//// ============================

func activitySheet(rows []auditlog.Activity) sheet {
	s := sheet{
		title:   "Activity Log",
		headers: []string{"ID", "Time", "Type", "Activity", "Actor", "IP"},
		widths:  []float64{14, 36, 24, 110, 60, 30},
	}
	s.landscape = true
	for _, r := range rows {
		actor := ""
		if r.ActorID != nil {
			actor = *r.ActorID
		}
		s.rows = append(s.rows, []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			string(r.Type),
			r.Text,
			actor,
			r.IPAddress,
		})
	}
	return s
}

func directorySheet(members []hotel.Application) sheet {
	s := sheet{
		title:   "Member Directory",
		headers: []string{"Hotel", "City", "Stars", "Rooms", "Email", "Phone"},
		widths:  []float64{60, 30, 12, 14, 44, 30},
	}
	for _, m := range members {
		s.rows = append(s.rows, []string{
			m.Name,
			m.City,
			strconv.Itoa(m.StarRating),
			strconv.Itoa(m.RoomCount),
			m.ContactEmail,
			m.ContactPhone,
		})
	}
	return s
}

func applicationsSheet(apps []hotel.Application) sheet {
	s := sheet{
		title:     "Membership Applications",
		landscape: true,
		headers:   []string{"ID", "Hotel", "City", "Status", "Stars", "Email", "Submitted", "Reviewed"},
		widths:    []float64{68, 50, 28, 20, 12, 50, 24, 24},
	}
	for _, a := range apps {
		reviewed := ""
		if a.ReviewedAt != nil {
			reviewed = a.ReviewedAt.Format("2006-01-02")
		}
		s.rows = append(s.rows, []string{
			a.ID,
			a.Name,
			a.City,
			string(a.Status),
			strconv.Itoa(a.StarRating),
			a.ContactEmail,
			a.CreatedAt.Format("2006-01-02"),
			reviewed,
		})
	}
	return s
}

//// ============================
/// FORMATS
//// ============================

func (s sheet) csv() ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(s.headers); err != nil {
		return nil, err
	}
	for _, r := range s.rows {
		if err := w.Write(r); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s sheet) excel() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	name := s.title
	index, err := f.NewSheet(name)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range s.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(name, cell, h)
	}
	for rIdx, r := range s.rows {
		for cIdx, v := range r {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(name, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s sheet) pdf() ([]byte, error) {
	orientation := "P"
	if s.landscape {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, s.title)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	for i, h := range s.headers {
		pdf.CellFormat(s.widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range s.rows {
		for i, v := range r {
			pdf.CellFormat(s.widths[i], 6, tr(fit(pdf, v, s.widths[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fit truncates v so it stays inside a cell of width w.
func fit(pdf *gofpdf.Fpdf, v string, w float64) string {
	if pdf.GetStringWidth(v) <= w-2 {
		return v
	}
	r := []rune(v)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w-2 {
		r = r[:len(r)-1]
	}
	return strings.TrimSpace(string(r)) + "..."
}
