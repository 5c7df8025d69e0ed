package cortexsetup

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/report.html
var reportTemplate string

//go:embed templates/styles.css
var reportStyles string

const (
	reportMarkdownName = "setup-report.md"
	reportHTMLName     = "setup-report.html"
	reportHistoryLimit = 20
)

var reportTimeout time.Duration

// ReportCmd renders a workspace status report in Markdown and HTML.
var ReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a workspace status report (Markdown and HTML)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := GenerateReport(".", reportTimeout); err != nil {
			log.Fatalf("Failed to generate report: %v", err)
		}
	},
}

func init() {
	ReportCmd.Flags().DurationVar(&reportTimeout, "timeout", 3*time.Second, "Cortex service probe timeout")
}

// GenerateReport runs the doctor checks, combines them with recent journal
// rows and writes setup-report.md and setup-report.html into dir.
func GenerateReport(dir string, probeTimeout time.Duration) error {
	results, err := RunDoctor(dir, probeTimeout)
	if err != nil {
		return err
	}

	db, err := openStateDB(dir)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close state database: %v", err)
		}
	}()

	runs, err := loadRuns(db, reportHistoryLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	markdown := reportMarkdown(results, runs)
	if err := os.WriteFile(filepath.Join(dir, reportMarkdownName), []byte(markdown), 0644); err != nil {
		return fmt.Errorf("write %s: %w", reportMarkdownName, err)
	}

	htmlDoc, err := renderReportHTML(markdown)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, reportHTMLName), []byte(htmlDoc), 0644); err != nil {
		return fmt.Errorf("write %s: %w", reportHTMLName, err)
	}

	log.Printf("Report generated: %s, %s", reportMarkdownName, reportHTMLName)
	return nil
}

func reportMarkdown(results []CheckResult, runs []RunRecord) string {
	var b strings.Builder
	b.WriteString("# Cortex workspace report\n\n")
	b.WriteString(fmt.Sprintf("Generated %s\n\n", time.Now().Format("2006-01-02 15:04")))

	b.WriteString("## Checks\n\n")
	b.WriteString("| Check | Status | Detail |\n")
	b.WriteString("|---|---|---|\n")
	for _, r := range results {
		b.WriteString(fmt.Sprintf("| %s | %s | %s |\n", r.Name, r.Status, cellText(r.Detail)))
	}

	b.WriteString("\n## Recent runs\n\n")
	if len(runs) == 0 {
		b.WriteString("No runs recorded yet.\n")
		return b.String()
	}
	b.WriteString("| Time | Command | Step | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Command, r.Step, r.Status))
	}
	return b.String()
}

// cellText keeps free-form detail strings from breaking the Markdown table.
func cellText(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// renderReportHTML converts the Markdown report into a standalone HTML page.
func renderReportHTML(markdown string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}

	data := struct {
		Styles      template.CSS
		Content     template.HTML
		GeneratedAt string
	}{
		Styles:      template.CSS(reportStyles),
		Content:     template.HTML(buf.String()),
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("execute report template: %w", err)
	}
	return out.String(), nil
}
