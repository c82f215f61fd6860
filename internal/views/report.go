package views

import (
	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/services"
)

// None is shown for an empty keyword or skill-gap list.
const None = "None"

// Report holds display-ready values for the five result sections.
type Report struct {
	OverallATSScore string
	JDMatch         string
	MissingKeywords []string
	SkillGaps       []string
	ProfileSummary  string
}

func NewReport(result *models.EvaluationResult) *Report {
	if result == nil {
		return nil
	}

	return &Report{
		OverallATSScore: result.OverallATSScore,
		JDMatch:         result.JDMatch,
		MissingKeywords: result.MissingKeywords,
		SkillGaps:       result.SkillGaps,
		ProfileSummary:  result.ProfileSummary,
	}
}

// ListText returns items, or a single None entry when empty.
func ListText(items []string) []string {
	if len(items) == 0 {
		return []string{None}
	}
	return items
}

type Page struct {
	Title          string
	Subtitle       string
	JobDescription string
	ConfigError    string
	MaxFileSize    int64
	Notices        []services.Notice
	Report         *Report
	ShowDebug      bool
	RawReply       string
	CleanedReply   string
	ParseFailed    bool
}

// NewPage builds the form page. outcome is nil before the first submission.
func NewPage(outcome *services.Outcome, jobDescription string, configErr error, maxFileSize int64) Page {
	page := Page{
		Title:          "Smart ATS",
		Subtitle:       "Improve Your Resume ATS",
		JobDescription: jobDescription,
		MaxFileSize:    maxFileSize,
	}

	if configErr != nil {
		page.ConfigError = services.ConfigMessage(configErr)
	}

	if outcome == nil {
		return page
	}

	page.Notices = outcome.Notices
	page.ShowDebug = outcome.HasReply()
	page.RawReply = outcome.RawReply
	page.CleanedReply = outcome.CleanedReply
	page.ParseFailed = outcome.ParseFailed()
	if !outcome.Failed() {
		page.Report = NewReport(outcome.Result)
	}

	return page
}

func NewEvaluateResponse(outcome *services.Outcome) models.EvaluateResponse {
	status := models.StatusRendered
	if outcome.Failed() {
		status = models.StatusFailed
	}

	notices := make([]models.Notice, 0, len(outcome.Notices))
	for _, n := range outcome.Notices {
		notices = append(notices, models.Notice{Severity: string(n.Severity), Message: n.Message})
	}

	response := models.EvaluateResponse{
		ID:           outcome.ID.String(),
		Status:       string(status),
		Stage:        string(outcome.Stage),
		ErrorKind:    string(outcome.Kind),
		Notices:      notices,
		SchemaValid:  outcome.SchemaValid,
		RawReply:     outcome.RawReply,
		CleanedReply: outcome.CleanedReply,
	}
	if outcome.Failed() {
		response.FailedAt = string(outcome.FailedAt)
	} else {
		response.Result = outcome.Result
	}

	return response
}
