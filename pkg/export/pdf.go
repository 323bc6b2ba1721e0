package export

import (
	"context"
	"fmt"
	"time"
)

// Document is the paginated-document capability the PDF renderer delegates
// to. Coordinates are in millimetres from the page's top-left corner.
type Document interface {
	AddPage()
	SetFontSize(size float64)
	Text(x, y float64, s string)
	Output() ([]byte, error)
}

// DocumentFactory creates a fresh document per export call. Nil means the
// capability is absent; rendering fails before any work begins.
type DocumentFactory func() (Document, error)

const (
	pdfMaxTableRows  = 15
	pdfTextCap       = 30
	pdfPageHeight    = 270.0
	pdfLineHeight    = 7.0
	pdfLeftMargin    = 10.0
	pdfTitleFontSize = 16.0
	pdfBodyFontSize  = 10.0
)

// PDFRenderer emits a title, generation timestamp, the summary block and a
// fixed-column table of the first requests.
type PDFRenderer struct {
	newDocument DocumentFactory
}

func NewPDFRenderer(factory DocumentFactory) *PDFRenderer {
	return &PDFRenderer{newDocument: factory}
}

func (r *PDFRenderer) Render(_ context.Context, ds *Dataset, _ Options) (*Result, error) {
	if r.newDocument == nil {
		return nil, fmt.Errorf("document builder: %w", ErrMissingCapability)
	}
	doc, err := r.newDocument()
	if err != nil {
		return nil, fmt.Errorf("document builder: %w", err)
	}

	doc.AddPage()
	y := 20.0

	doc.SetFontSize(pdfTitleFontSize)
	doc.Text(pdfLeftMargin, y, "Access Request Report")
	y += pdfLineHeight * 2

	doc.SetFontSize(pdfBodyFontSize)
	doc.Text(pdfLeftMargin, y, "Generated: "+time.Now().Format("2006-01-02 15:04:05"))
	y += pdfLineHeight * 2

	for _, line := range summaryLines(ds.Summary) {
		y = advance(doc, y)
		doc.Text(pdfLeftMargin, y, line)
		y += pdfLineHeight
	}
	y += pdfLineHeight

	y = advance(doc, y)
	doc.Text(pdfLeftMargin, y, "ID          Requester       Status      Submitted")
	y += pdfLineHeight

	count := len(ds.Requests)
	if count > pdfMaxTableRows {
		count = pdfMaxTableRows
	}
	for _, req := range ds.Requests[:count] {
		y = advance(doc, y)
		line := fmt.Sprintf("%-12s%-16s%-12s%s",
			elide(req.ID, 10),
			elide(req.Requester, 14),
			req.Metadata.Status,
			req.Metadata.SubmittedAt.Format("2006-01-02"),
		)
		doc.Text(pdfLeftMargin, y, line)
		y += pdfLineHeight
	}

	content, err := doc.Output()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return newResult(content, "report", "pdf", MediaTypePDF), nil
}

// advance starts a new page once the vertical cursor passes the threshold.
func advance(doc Document, y float64) float64 {
	if y > pdfPageHeight {
		doc.AddPage()
		return 20.0
	}
	return y
}

// elide caps long text with a trailing ellipsis. Truncation counts runes so
// a multibyte character is never split.
func elide(s string, max int) string {
	if max > pdfTextCap {
		max = pdfTextCap
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func summaryLines(s *Summary) []string {
	return []string{
		fmt.Sprintf("Total Requests: %d", s.TotalRequests),
		fmt.Sprintf("Pending: %d  Approved: %d  Rejected: %d", s.PendingRequests, s.ApprovedRequests, s.RejectedRequests),
		fmt.Sprintf("Approvals: %d  Rejections: %d  Comments: %d", s.TotalApprovals, s.TotalRejections, s.TotalComments),
		"Average Approval Time: " + s.AvgApprovalTime,
		"Most Active Requester: " + s.MostActiveRequester,
		"Most Common Workflow: " + s.MostCommonWorkflow,
	}
}
