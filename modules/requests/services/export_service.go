package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/OPMDOR/system-access-form/pkg/eventbus"
	"github.com/OPMDOR/system-access-form/pkg/export"
)

// ExportCompleted is published on the event bus after each successful export.
type ExportCompleted struct {
	Format      string
	Filename    string
	Size        int
	RecordCount int
}

// ExportService wraps the export engine with logging and event publication.
type ExportService struct {
	exporter  *export.Exporter
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewExportService(exporter *export.Exporter, publisher eventbus.EventBus, log *logrus.Logger) *ExportService {
	return &ExportService{
		exporter:  exporter,
		publisher: publisher,
		log:       log,
	}
}

// Export runs one export call and publishes ExportCompleted on success.
func (s *ExportService) Export(ctx context.Context, format string, opts export.Options) (*export.Result, error) {
	result, err := s.exporter.Export(ctx, format, opts)
	if err != nil {
		return nil, mapExportError(err)
	}

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"format":   format,
			"filename": result.Filename,
			"size":     result.Size,
		}).Info("export completed")
	}
	if s.publisher != nil {
		s.publisher.Publish(&ExportCompleted{
			Format:      format,
			Filename:    result.Filename,
			Size:        result.Size,
			RecordCount: result.Metadata.RecordCount,
		})
	}
	return result, nil
}

// Download persists an export built through the fluent query.
func (s *ExportService) Download(ctx context.Context, format, dir string, opts export.Options) (string, error) {
	q := s.exporter.Query().Format(format)
	q = applyOptions(q, opts)
	path, err := q.Download(ctx, dir)
	if err != nil {
		return "", mapExportError(err)
	}
	if s.log != nil {
		s.log.WithField("path", path).Info("export saved")
	}
	return path, nil
}

// Formats lists the registered export formats.
func (s *ExportService) Formats() []string {
	return s.exporter.Formats()
}

func applyOptions(q *export.Query, opts export.Options) *export.Query {
	c := opts.Criteria
	if c.Status != "" {
		q = q.Status(c.Status)
	}
	if c.Requester != "" {
		q = q.Requester(c.Requester)
	}
	if c.WorkflowID != "" {
		q = q.Workflow(c.WorkflowID)
	}
	if c.DateRange != nil {
		q = q.DateRange(c.DateRange.Start, c.DateRange.End)
	}
	if c.SortBy != "" || c.SortOrder != "" {
		q = q.SortBy(c.SortBy, c.SortOrder)
	}
	if c.Limit > 0 {
		q = q.Limit(c.Limit)
	}
	if opts.Sheet != "" {
		q = q.Sheet(opts.Sheet)
	}
	if opts.Mode != "" {
		q = q.Mode(opts.Mode)
	}
	return q
}

// ServiceError carries the HTTP mapping of an engine error to the
// presentation layer.
type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

func mapExportError(err error) error {
	switch {
	case errors.Is(err, export.ErrUnsupportedFormat):
		return newServiceError(http.StatusBadRequest, export.ErrUnsupportedFormat.Code, err.Error(), err)
	case errors.Is(err, export.ErrMissingTemplate):
		return newServiceError(http.StatusBadRequest, export.ErrMissingTemplate.Code, err.Error(), err)
	case errors.Is(err, export.ErrMissingCapability):
		return newServiceError(http.StatusNotImplemented, export.ErrMissingCapability.Code, err.Error(), err)
	case errors.Is(err, export.ErrDuplicateFormat):
		return newServiceError(http.StatusConflict, export.ErrDuplicateFormat.Code, err.Error(), err)
	default:
		return newServiceError(http.StatusInternalServerError, "EXPORT_INTERNAL", err.Error(), err)
	}
}
