package reports

import (
	"context"
	"fmt"

	"github.com/sharath018/hotel-association-backend/internal/apperror"
	"github.com/sharath018/hotel-association-backend/internal/auditlog"
	"github.com/sharath018/hotel-association-backend/internal/auth"
	"github.com/sharath018/hotel-association-backend/internal/authz"
	"github.com/sharath018/hotel-association-backend/internal/directory"
	"github.com/sharath018/hotel-association-backend/internal/hotel"
)

// ReportService coordinates the data sources and the exporter.
type ReportService interface {
	ExportActivities(ctx context.Context, sess auth.Session, filter auditlog.Filter, format string) (*File, error)
	ExportDirectory(ctx context.Context, format string) (*File, error)
	ExportApplications(ctx context.Context, sess auth.Session, status hotel.Status, format string) (*File, error)
}

// ApplicationSource is the full application set. hotel.Repository satisfies it.
type ApplicationSource interface {
	ListAll(ctx context.Context) ([]hotel.Application, error)
}

type reportService struct {
	guard        *authz.Guard
	activities   auditlog.Service
	directory    *directory.Service
	applications ApplicationSource
	exporter     ReportExporter
}

func NewReportService(guard *authz.Guard, activities auditlog.Service, dir *directory.Service, apps ApplicationSource, exporter ReportExporter) ReportService {
	return &reportService{
		guard:        guard,
		activities:   activities,
		directory:    dir,
		applications: apps,
		exporter:     exporter,
	}
}

func (s *reportService) ExportActivities(ctx context.Context, sess auth.Session, filter auditlog.Filter, format string) (*File, error) {
	actor, err := s.guard.Authorize(ctx, sess, authz.ViewActivity)
	if err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = auditlog.MaxLimit
	}

	rows, err := s.activities.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	file, err := s.export(ReportTypeActivity, format, ReportData{Activities: rows})
	if err != nil {
		return nil, err
	}

	s.activities.RecordSafe(ctx, auditlog.Entry{
		Type:    auditlog.TypeSecurity,
		Text:    fmt.Sprintf("Activity log exported as %s (%d entries)", NormalizeFormat(format), len(rows)),
		ActorID: &actor.ID,
	})
	return file, nil
}

// ExportDirectory is public, like the directory itself.
func (s *reportService) ExportDirectory(ctx context.Context, format string) (*File, error) {
	members, err := s.directory.ListMembers(ctx, directory.Query{})
	if err != nil {
		return nil, err
	}
	return s.export(ReportTypeDirectory, format, ReportData{Members: members})
}

func (s *reportService) ExportApplications(ctx context.Context, sess auth.Session, status hotel.Status, format string) (*File, error) {
	if _, err := s.guard.Authorize(ctx, sess, authz.TransitionApplications); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, apperror.Validation("unknown status %q", status)
	}

	all, err := s.applications.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	apps := all[:0]
	for _, a := range all {
		if status == "" || a.Status == status {
			apps = append(apps, a)
		}
	}
	return s.export(ReportTypeApplications, format, ReportData{Applications: apps})
}

func (s *reportService) export(reportType, format string, data ReportData) (*File, error) {
	format = NormalizeFormat(format)
	switch format {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		return nil, apperror.Validation("format must be csv, xlsx or pdf")
	}
	file, err := s.exporter.Export(reportType, format, data)
	if err != nil {
		return nil, fmt.Errorf("export %s report: %w", reportType, err)
	}
	return file, nil
}
