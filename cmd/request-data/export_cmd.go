package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OPMDOR/system-access-form/modules/requests/infrastructure/persistence"
	"github.com/OPMDOR/system-access-form/pkg/configuration"
	"github.com/OPMDOR/system-access-form/pkg/excel"
	"github.com/OPMDOR/system-access-form/pkg/export"
	"github.com/OPMDOR/system-access-form/pkg/pdf"
)

type exportOptions struct {
	input      string
	outputDir  string
	formats    []string
	status     string
	requester  string
	workflowID string
	sortBy     string
	sortOrder  string
	limit      int
	sheet      string
	mode       string
	from       string
	to         string
}

func newExportCmd() *cobra.Command {
	var opts exportOptions
	var formats string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a request snapshot into one or more report formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = splitCommaList(formats)
			if len(opts.formats) == 0 {
				return withCode(exitUsage, fmt.Errorf("--format is required"))
			}
			return runExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Request snapshot JSON file (required)")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "Output directory (default: EXPORT_DIR)")
	cmd.Flags().StringVar(&formats, "format", "", "Comma-separated formats: csv,json,xml,excel,pdf")
	cmd.Flags().StringVar(&opts.status, "status", "", "Filter: exact status match")
	cmd.Flags().StringVar(&opts.requester, "requester", "", "Filter: exact requester match")
	cmd.Flags().StringVar(&opts.workflowID, "workflow", "", "Filter: exact workflow id match")
	cmd.Flags().StringVar(&opts.sortBy, "sort-by", "", "Sort field (default submittedAt)")
	cmd.Flags().StringVar(&opts.sortOrder, "sort-order", "", "Sort order: asc or desc (default desc)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Cap the number of exported requests")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "CSV category: requests, approvals, rejections, comments")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "JSON mode: full, summary, minimal")
	cmd.Flags().StringVar(&opts.from, "from", "", "Filter: submitted on/after (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&opts.to, "to", "", "Filter: submitted on/before (YYYY-MM-DD or RFC3339)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported export formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			exporter := export.New(nil,
				export.WithWorkbookFactory(excel.NewWorkbook),
				export.WithDocumentFactory(pdf.NewDocument),
			)
			return writeJSONLine(map[string][]string{"formats": exporter.Formats()})
		},
	}
}

func runExport(ctx context.Context, opts exportOptions) error {
	records, err := persistence.LoadSnapshotFile(opts.input)
	if err != nil {
		return withCode(exitIO, err)
	}

	criteria, err := buildCriteria(opts)
	if err != nil {
		return withCode(exitUsage, err)
	}

	conf := configuration.Use()
	log := conf.Logger()
	outputDir := resolveOutputDir(opts.outputDir, conf.Export.Dir)
	repo := persistence.NewInMemoryRequestRepository(records)
	exporter := export.New(repo,
		export.WithLogger(log),
		export.WithGeneratedBy(conf.Export.GeneratedBy),
		export.WithDefaultLimit(conf.Export.DefaultLimit),
		export.WithWorkbookFactory(excel.NewWorkbook),
		export.WithDocumentFactory(pdf.NewDocument),
	)
	type exportedFile struct {
		Format string `json:"format"`
		Path   string `json:"path"`
		Size   int64  `json:"size"`
	}
	files := make([]exportedFile, 0, len(opts.formats))

	for _, format := range opts.formats {
		q := exporter.Query().Format(format)
		q.Sheet(opts.sheet).Mode(opts.mode)
		applyCriteria(q, criteria)

		path, err := q.Download(ctx, outputDir)
		if err != nil {
			return withCode(exitValidation, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return withCode(exitIO, err)
		}
		files = append(files, exportedFile{Format: format, Path: path, Size: info.Size()})
	}

	type exportSummary struct {
		Status  string         `json:"status"`
		Records int            `json:"records"`
		Files   []exportedFile `json:"files"`
	}
	return writeJSONLine(exportSummary{
		Status:  "exported",
		Records: len(records),
		Files:   files,
	})
}

func buildCriteria(opts exportOptions) (export.Criteria, error) {
	c := export.Criteria{
		Status:     opts.status,
		Requester:  opts.requester,
		WorkflowID: opts.workflowID,
		SortBy:     opts.sortBy,
		SortOrder:  opts.sortOrder,
		Limit:      opts.limit,
	}
	if opts.from != "" || opts.to != "" {
		dr := &export.DateRange{}
		if opts.from != "" {
			t, err := parseTimeField(opts.from)
			if err != nil {
				return c, fmt.Errorf("invalid --from: %w", err)
			}
			dr.Start = t
		}
		dr.End = maxEndDate
		if opts.to != "" {
			t, err := parseTimeField(opts.to)
			if err != nil {
				return c, fmt.Errorf("invalid --to: %w", err)
			}
			dr.End = t
		}
		c.DateRange = dr
	}
	return c, nil
}

func applyCriteria(q *export.Query, c export.Criteria) {
	q.Status(c.Status).Requester(c.Requester).Workflow(c.WorkflowID)
	if c.DateRange != nil {
		q.DateRange(c.DateRange.Start, c.DateRange.End)
	}
	if c.SortBy != "" || c.SortOrder != "" {
		q.SortBy(c.SortBy, c.SortOrder)
	}
	if c.Limit > 0 {
		q.Limit(c.Limit)
	}
}

// resolveOutputDir prefers the --output flag over the configured export dir.
func resolveOutputDir(flagValue, configured string) string {
	if flagValue != "" {
		return flagValue
	}
	return configured
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
