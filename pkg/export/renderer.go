package export

import (
	"context"
	"fmt"
	"time"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

// Dataset is the immutable snapshot fed into a renderer: the filtered
// requests, their flattened event relations and the computed statistics.
type Dataset struct {
	Requests   []*request.Request
	Approvals  []ApprovalRow
	Rejections []RejectionRow
	Comments   []CommentRow
	Summary    *Summary
}

// Options carries the per-call rendering knobs.
type Options struct {
	Criteria Criteria
	// Sheet selects the category for delimited output. Defaults to requests.
	Sheet string
	// Mode selects the JSON projection: full, summary or minimal.
	Mode string
}

// Metadata is the envelope the orchestrator attaches to every result.
type Metadata struct {
	ExportedAt  time.Time `json:"exportedAt"`
	Format      string    `json:"format"`
	RecordCount int       `json:"recordCount"`
	Filters     Criteria  `json:"filters"`
	GeneratedBy string    `json:"generatedBy"`
}

// Result is one rendered export payload. Content is immutable once returned;
// it does not reflect later mutations of the source records.
type Result struct {
	Content   []byte
	Filename  string
	MediaType string
	Size      int
	Metadata  Metadata
}

// Renderer converts a dataset into one output format's payload.
type Renderer interface {
	Render(ctx context.Context, ds *Dataset, opts Options) (*Result, error)
}

const (
	MediaTypeCSV  = "text/csv"
	MediaTypeJSON = "application/json"
	MediaTypeXML  = "application/xml"
	MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypePDF  = "application/pdf"
)

const filenamePrefix = "access_requests"

// exportFilename builds "<prefix>_<discriminator>_<YYYY-MM-DD>.<ext>".
func exportFilename(discriminator, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", filenamePrefix, discriminator, time.Now().Format("2006-01-02"), ext)
}

func newResult(content []byte, discriminator, ext, mediaType string) *Result {
	return &Result{
		Content:   content,
		Filename:  exportFilename(discriminator, ext),
		MediaType: mediaType,
		Size:      len(content),
	}
}
