package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/tmp/out", resolveOutputDir("/tmp/out", "exports"))
	require.Equal(t, "exports", resolveOutputDir("", "exports"))
}

func TestBuildCriteria_OpenEndedRange(t *testing.T) {
	t.Parallel()

	c, err := buildCriteria(exportOptions{from: "2025-03-10"})
	require.NoError(t, err)
	require.NotNil(t, c.DateRange)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), c.DateRange.Start)
	require.Equal(t, maxEndDate, c.DateRange.End, "missing --to must not exclude future submissions")

	c, err = buildCriteria(exportOptions{from: "2025-03-10", to: "2025-03-12"})
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), c.DateRange.End)

	_, err = buildCriteria(exportOptions{from: "not-a-date"})
	require.Error(t, err)
}

func TestSplitCommaList(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"csv", "json"}, splitCommaList("csv, json"))
	require.Equal(t, []string{"pdf"}, splitCommaList(",pdf,"))
	require.Nil(t, splitCommaList("  "))
}
