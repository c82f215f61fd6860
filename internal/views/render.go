package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"alfredoptarigan/smart-ats/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	page *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("index.html").
		Funcs(template.FuncMap{
			"listText": ListText,
			"megabytes": func(size int64) string {
				return fmt.Sprintf("%.0f MB", float64(size)/(1<<20))
			},
		}).
		ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{page: tmpl}, nil
}

func (r *Renderer) RenderPage(w io.Writer, page Page) error {
	if err := r.page.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// RenderText writes a plain-text report for terminals.
func RenderText(w io.Writer, outcome *services.Outcome) error {
	var b strings.Builder

	for _, n := range outcome.Notices {
		fmt.Fprintf(&b, "[%s] %s\n", strings.ToUpper(string(n.Severity)), n.Message)
	}

	if outcome.HasReply() {
		fmt.Fprintf(&b, "\n--- Debug Raw Response ---\n%s\n", outcome.RawReply)
		fmt.Fprintf(&b, "--- Debug Cleaned Response ---\n%s\n", outcome.CleanedReply)
	}

	if outcome.ParseFailed() {
		fmt.Fprintf(&b, "\n--- Debug JSON Output ---\n%s\n", outcome.CleanedReply)
	}

	if report := NewReport(outcome.Result); report != nil && !outcome.Failed() {
		fmt.Fprintf(&b, "\n📊 Overall ATS Score: %s\n", report.OverallATSScore)
		fmt.Fprintf(&b, "🟨 JD Match: %s\n", report.JDMatch)
		fmt.Fprintf(&b, "🟥 Missing Keywords:\n")
		for _, kw := range ListText(report.MissingKeywords) {
			fmt.Fprintf(&b, "  - %s\n", kw)
		}
		fmt.Fprintf(&b, "🟠 Skill Gaps:\n")
		for _, gap := range ListText(report.SkillGaps) {
			fmt.Fprintf(&b, "  - %s\n", gap)
		}
		fmt.Fprintf(&b, "🟦 Profile Summary:\n%s\n", report.ProfileSummary)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
