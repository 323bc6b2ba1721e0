package export

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

// Format names of the built-in renderers.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatXLSX = "excel"
	FormatPDF  = "pdf"
)

// Exporter drives the export pipeline: query -> relation extraction ->
// statistics -> renderer. It never mutates the source records.
type Exporter struct {
	repo         request.Repository
	formats      map[string]Renderer
	log          *logrus.Logger
	generatedBy  string
	defaultLimit int
}

type Option func(*Exporter)

func WithLogger(log *logrus.Logger) Option {
	return func(e *Exporter) { e.log = log }
}

func WithGeneratedBy(tag string) Option {
	return func(e *Exporter) { e.generatedBy = tag }
}

// WithDefaultLimit caps queries that supply no explicit limit. Zero
// disables the cap.
func WithDefaultLimit(n int) Option {
	return func(e *Exporter) { e.defaultLimit = n }
}

// WithWorkbookFactory installs the spreadsheet capability.
func WithWorkbookFactory(f WorkbookFactory) Option {
	return func(e *Exporter) {
		e.formats[FormatXLSX] = NewExcelRenderer(DefaultTemplates(), f)
	}
}

// WithDocumentFactory installs the paginated-document capability.
func WithDocumentFactory(f DocumentFactory) Option {
	return func(e *Exporter) {
		e.formats[FormatPDF] = NewPDFRenderer(f)
	}
}

// New builds an exporter over the given read-only repository with the five
// built-in formats registered. The spreadsheet and document formats fail
// with a capability-missing error until their factories are installed.
func New(repo request.Repository, opts ...Option) *Exporter {
	templates := DefaultTemplates()
	e := &Exporter{
		repo: repo,
		formats: map[string]Renderer{
			FormatCSV:  NewCSVRenderer(templates),
			FormatJSON: NewJSONRenderer(),
			FormatXML:  NewXMLRenderer(),
			FormatXLSX: NewExcelRenderer(templates, nil),
			FormatPDF:  NewPDFRenderer(nil),
		},
		generatedBy: "system-access-form",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterFormat adds a renderer under a new name. Duplicate names are
// rejected so a registration cannot silently shadow a built-in.
func (e *Exporter) RegisterFormat(name string, r Renderer) error {
	if _, exists := e.formats[name]; exists {
		return fmt.Errorf("format %q: %w", name, ErrDuplicateFormat)
	}
	e.formats[name] = r
	return nil
}

// RegisterDelimitedFormat registers a delimited-text format built from a
// custom template set.
func (e *Exporter) RegisterDelimitedFormat(name string, templates TemplateSet) error {
	return e.RegisterFormat(name, NewCSVRenderer(templates))
}

// Formats lists registered format names in sorted order.
func (e *Exporter) Formats() []string {
	names := make([]string, 0, len(e.formats))
	for name := range e.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export validates the format, runs the pipeline and attaches the metadata
// envelope. Validation happens before the repository is touched.
func (e *Exporter) Export(ctx context.Context, format string, opts Options) (*Result, error) {
	renderer, ok := e.formats[format]
	if !ok {
		return nil, fmt.Errorf("format %q (valid: %s): %w",
			format, strings.Join(e.Formats(), ", "), ErrUnsupportedFormat)
	}

	records, err := e.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read request snapshot: %w", err)
	}

	if opts.Criteria.Limit == 0 && e.defaultLimit > 0 {
		opts.Criteria.Limit = e.defaultLimit
	}
	filtered := Filter(records, opts.Criteria)
	relations := Extract(filtered)
	ds := &Dataset{
		Requests:   filtered,
		Approvals:  relations.Approvals,
		Rejections: relations.Rejections,
		Comments:   relations.Comments,
		Summary:    Summarize(filtered),
	}

	result, err := renderer.Render(ctx, ds, opts)
	if err != nil {
		return nil, err
	}

	result.Metadata = Metadata{
		ExportedAt:  time.Now().UTC(),
		Format:      format,
		RecordCount: len(filtered),
		Filters:     opts.Criteria,
		GeneratedBy: e.generatedBy,
	}

	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"format":  format,
			"records": len(filtered),
			"bytes":   result.Size,
		}).Debug("export rendered")
	}
	return result, nil
}
