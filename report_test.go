package cortexsetup

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReportMarkdown(t *testing.T) {
	results := []CheckResult{
		{Name: "env-file", Status: statusOK, Detail: ".env"},
		{Name: "cortex-service", Status: statusWarn, Detail: "localhost:6868 unreachable | retrying"},
	}
	runs := []RunRecord{
		{Command: "setup", Step: "seed-env", Status: statusOK, CreatedAt: time.Now()},
	}

	md := reportMarkdown(results, runs)

	require.Contains(t, md, "# Cortex workspace report")
	require.Contains(t, md, "## Checks")
	require.Contains(t, md, "| env-file | ok | .env |")
	require.Contains(t, md, `unreachable \| retrying`, "pipes in details must not break the table")
	require.Contains(t, md, "## Recent runs")
	require.Contains(t, md, "| setup | seed-env | ok |")
}

func TestReportMarkdownNoHistory(t *testing.T) {
	md := reportMarkdown(nil, nil)
	require.Contains(t, md, "No runs recorded yet.")
}

func TestRenderReportHTML(t *testing.T) {
	md := reportMarkdown([]CheckResult{{Name: "env-file", Status: statusOK, Detail: ".env"}}, nil)

	doc, err := renderReportHTML(md)
	require.NoError(t, err)

	require.Contains(t, doc, "<!DOCTYPE html>")
	require.Contains(t, doc, "<h1")
	require.Contains(t, doc, "<table>")
	require.Contains(t, doc, "env-file")
	require.Contains(t, doc, "font-family", "styles must be embedded")
}

func TestGenerateReport(t *testing.T) {
	clearEmotivEnv(t)
	dir := t.TempDir()
	seedExampleWithCredentials(t, dir)
	require.NoError(t, RunSetup(dir))

	require.NoError(t, GenerateReport(dir, 200*time.Millisecond))

	require.FileExists(t, filepath.Join(dir, reportMarkdownName))
	require.FileExists(t, filepath.Join(dir, reportHTMLName))
}
