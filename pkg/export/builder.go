package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Query accumulates filter and format options across chained calls before
// invoking the exporter:
//
//	res, err := exporter.Query().
//	    Format(FormatCSV).
//	    Status(request.StatusPending).
//	    Limit(100).
//	    Execute(ctx)
type Query struct {
	exporter *Exporter
	format   string
	opts     Options
}

// Query starts a fluent export query. The format defaults to JSON.
func (e *Exporter) Query() *Query {
	return &Query{exporter: e, format: FormatJSON}
}

func (q *Query) Format(format string) *Query {
	q.format = format
	return q
}

func (q *Query) Status(status string) *Query {
	q.opts.Criteria.Status = status
	return q
}

func (q *Query) Requester(requester string) *Query {
	q.opts.Criteria.Requester = requester
	return q
}

func (q *Query) Workflow(workflowID string) *Query {
	q.opts.Criteria.WorkflowID = workflowID
	return q
}

func (q *Query) DateRange(start, end time.Time) *Query {
	q.opts.Criteria.DateRange = &DateRange{Start: start, End: end}
	return q
}

func (q *Query) SortBy(field, order string) *Query {
	q.opts.Criteria.SortBy = field
	q.opts.Criteria.SortOrder = order
	return q
}

func (q *Query) Limit(n int) *Query {
	q.opts.Criteria.Limit = n
	return q
}

// Sheet selects the category for delimited formats.
func (q *Query) Sheet(category string) *Query {
	q.opts.Sheet = category
	return q
}

// Mode selects the JSON projection.
func (q *Query) Mode(mode string) *Query {
	q.opts.Mode = mode
	return q
}

// Execute runs the accumulated query through the exporter.
func (q *Query) Execute(ctx context.Context) (*Result, error) {
	return q.exporter.Export(ctx, q.format, q.opts)
}

// Download executes the query and persists the payload under the result's
// filename in dir. The payload goes through a transient file handle that is
// released unconditionally: write to a temp file, then rename into place.
func (q *Query) Download(ctx context.Context, dir string) (string, error) {
	result, err := q.Execute(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return "", fmt.Errorf("create export buffer: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(result.Content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write export payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close export buffer: %w", err)
	}

	target := filepath.Join(dir, result.Filename)
	if err := os.Rename(tmpName, target); err != nil {
		return "", fmt.Errorf("save export: %w", err)
	}
	return target, nil
}
