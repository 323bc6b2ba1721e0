package export

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OPMDOR/system-access-form/modules/requests/domain/request"
)

// XMLRenderer serializes the export as nested tags. Serialization is an
// explicit walk over a scalar / sequence / mapping element tree, so edge
// cases (nil values, sequences of mappings) stay well-defined.
type XMLRenderer struct{}

func NewXMLRenderer() *XMLRenderer {
	return &XMLRenderer{}
}

// xmlNode is one element: either scalar text or child elements, never both.
type xmlNode struct {
	tag      string
	text     string
	children []*xmlNode
}

func scalarNode(tag, text string) *xmlNode {
	return &xmlNode{tag: tag, text: text}
}

func parentNode(tag string, children ...*xmlNode) *xmlNode {
	return &xmlNode{tag: tag, children: children}
}

func (r *XMLRenderer) Render(_ context.Context, ds *Dataset, _ Options) (*Result, error) {
	envelope := parentNode("requestExport",
		scalarNode("exportDate", time.Now().UTC().Format(time.RFC3339)),
		scalarNode("recordCount", strconv.Itoa(len(ds.Requests))),
		requestsNode(ds.Requests),
		statisticsNode(ds.Summary),
	)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	writeNode(&buf, envelope, 0)

	return newResult(buf.Bytes(), "full", "xml", MediaTypeXML), nil
}

func requestsNode(records []*request.Request) *xmlNode {
	children := make([]*xmlNode, 0, len(records))
	for _, rec := range records {
		node := parentNode("request",
			scalarNode("id", rec.ID),
			scalarNode("requester", rec.Requester),
			scalarNode("subject", rec.Subject),
			scalarNode("workflowId", rec.WorkflowID),
			scalarNode("status", rec.Metadata.Status),
			scalarNode("submittedAt", rec.Metadata.SubmittedAt.Format(time.RFC3339)),
		)
		if rec.Metadata.CompletedAt != nil {
			node.children = append(node.children, scalarNode("completedAt", rec.Metadata.CompletedAt.Format(time.RFC3339)))
		}
		node.children = append(node.children, scalarNode("currentLevel", strconv.Itoa(rec.Metadata.CurrentLevel)))
		node.children = append(node.children,
			approvalsNode(rec.Metadata.Approvals),
			rejectionsNode(rec.Metadata.Rejections),
			commentsNode(rec.Metadata.Comments),
		)
		if rec.Workflow != nil {
			node.children = append(node.children, mappingNode("workflow", rec.Workflow))
		}
		if rec.Data != nil {
			node.children = append(node.children, mappingNode("data", rec.Data))
		}
		children = append(children, node)
	}
	return &xmlNode{tag: "requests", children: children}
}

func approvalsNode(approvals []request.Approval) *xmlNode {
	node := &xmlNode{tag: "approvals"}
	for _, a := range approvals {
		node.children = append(node.children, parentNode("approval",
			scalarNode("approverId", a.ApproverID),
			scalarNode("level", strconv.Itoa(a.Level)),
			scalarNode("approvedAt", a.ApprovedAt.Format(time.RFC3339)),
			scalarNode("comment", a.Comment),
		))
	}
	return node
}

func rejectionsNode(rejections []request.Rejection) *xmlNode {
	node := &xmlNode{tag: "rejections"}
	for _, rj := range rejections {
		node.children = append(node.children, parentNode("rejection",
			scalarNode("approverId", rj.ApproverID),
			scalarNode("level", strconv.Itoa(rj.Level)),
			scalarNode("rejectedAt", rj.RejectedAt.Format(time.RFC3339)),
			scalarNode("reason", rj.Reason),
		))
	}
	return node
}

func commentsNode(comments []request.Comment) *xmlNode {
	node := &xmlNode{tag: "comments"}
	for _, c := range comments {
		node.children = append(node.children, parentNode("comment",
			scalarNode("user", c.User),
			scalarNode("type", c.Type),
			scalarNode("timestamp", c.Timestamp.Format(time.RFC3339)),
			scalarNode("text", c.Text),
		))
	}
	return node
}

func statisticsNode(s *Summary) *xmlNode {
	return parentNode("statistics",
		scalarNode("totalRequests", strconv.Itoa(s.TotalRequests)),
		scalarNode("pendingRequests", strconv.Itoa(s.PendingRequests)),
		scalarNode("approvedRequests", strconv.Itoa(s.ApprovedRequests)),
		scalarNode("rejectedRequests", strconv.Itoa(s.RejectedRequests)),
		scalarNode("totalApprovals", strconv.Itoa(s.TotalApprovals)),
		scalarNode("totalRejections", strconv.Itoa(s.TotalRejections)),
		scalarNode("totalComments", strconv.Itoa(s.TotalComments)),
		scalarNode("avgApprovalTime", s.AvgApprovalTime),
		scalarNode("mostActiveRequester", s.MostActiveRequester),
		scalarNode("mostCommonWorkflow", s.MostCommonWorkflow),
	)
}

// mappingNode converts an arbitrary attachment map into elements. Keys are
// sorted so output is deterministic.
func mappingNode(tag string, m map[string]any) *xmlNode {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	node := &xmlNode{tag: tag}
	for _, k := range keys {
		node.children = append(node.children, valueNode(k, m[k]))
	}
	return node
}

// valueNode is the scalar / sequence / mapping variant switch. Sequences
// become a wrapper tag with one <item> child per element.
func valueNode(tag string, v any) *xmlNode {
	switch val := v.(type) {
	case nil:
		return scalarNode(tag, "")
	case map[string]any:
		return mappingNode(tag, val)
	case []any:
		node := &xmlNode{tag: tag}
		for _, elem := range val {
			node.children = append(node.children, valueNode("item", elem))
		}
		return node
	case string:
		return scalarNode(tag, val)
	case time.Time:
		return scalarNode(tag, val.Format(time.RFC3339))
	case float64:
		return scalarNode(tag, strconv.FormatFloat(val, 'f', -1, 64))
	case int:
		return scalarNode(tag, strconv.Itoa(val))
	case bool:
		return scalarNode(tag, strconv.FormatBool(val))
	default:
		return scalarNode(tag, fmt.Sprint(val))
	}
}

func writeNode(buf *bytes.Buffer, n *xmlNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if len(n.children) == 0 {
		buf.WriteString(indent + "<" + n.tag + ">" + escapeXML(n.text) + "</" + n.tag + ">\n")
		return
	}
	buf.WriteString(indent + "<" + n.tag + ">\n")
	for _, c := range n.children {
		writeNode(buf, c, depth+1)
	}
	buf.WriteString(indent + "</" + n.tag + ">\n")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
