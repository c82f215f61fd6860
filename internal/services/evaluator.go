package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/smart-ats/internal/models"
	"alfredoptarigan/smart-ats/internal/repositories"
)

type Stage string

const (
	StageIdle        Stage = "idle"
	StageExtracting  Stage = "extracting"
	StagePrompting   Stage = "prompting"
	StageGenerating  Stage = "generating"
	StageNormalizing Stage = "normalizing"
	StageRendered    Stage = "rendered"
	StageErrorShown  Stage = "error_shown"
)

type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindConfiguration ErrorKind = "configuration"
	KindUpload        ErrorKind = "upload"
	KindExtraction    ErrorKind = "extraction"
	KindGeneration    ErrorKind = "generation"
	KindParse         ErrorKind = "parse"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

const (
	MsgMissingDocument = "Please upload a resume to proceed."
	MsgNoText          = "Could not extract text from the PDF. Please try another file."
	MsgEmptyReply      = "The model returned an empty response. Please try again."
	MsgSchemaMismatch  = "The evaluation did not fully match the expected format; missing values are shown as N/A."
	MsgMissingAPIKey   = "API key not found. Please check your .env file"
)

type Notice struct {
	Severity Severity
	Message  string
}

// Submission is one press of the submit control.
type Submission struct {
	JobDescription string
	Document       *Document
	// UploadErr is set when the uploaded file was rejected before reaching the pipeline.
	UploadErr error
}

// Outcome is everything the presentation layer needs about one submission.
type Outcome struct {
	ID           uuid.UUID
	Stage        Stage
	FailedAt     Stage
	Kind         ErrorKind
	Notices      []Notice
	DocumentName string
	RawReply     string
	CleanedReply string
	Result       *models.EvaluationResult
	SchemaValid  bool
}

func (o *Outcome) Failed() bool {
	return o.Stage == StageErrorShown
}

func (o *Outcome) HasReply() bool {
	return o.RawReply != ""
}

func (o *Outcome) ParseFailed() bool {
	return o.Kind == KindParse
}

func (o *Outcome) addNotice(severity Severity, message string) {
	o.Notices = append(o.Notices, Notice{Severity: severity, Message: message})
}

func (o *Outcome) fail(kind ErrorKind, severity Severity, message string) *Outcome {
	o.FailedAt = o.Stage
	o.Stage = StageErrorShown
	o.Kind = kind
	o.addNotice(severity, message)
	return o
}

type EvaluatorService interface {
	Evaluate(ctx context.Context, submission Submission) *Outcome
	// ConfigError is the startup configuration problem blocking every submission, if any.
	ConfigError() error
}

type evaluatorService struct {
	evalRepo        repositories.EvaluationRepository
	geminiService   GeminiService
	pdfParser       PDFParserService
	normalizer      ResponseNormalizer
	schemaValidator SchemaValidator
	promptBuilder   *PromptBuilder
	configErr       error
}

// NewEvaluatorService wires the pipeline. geminiService may be nil, in which
// case configErr explains why; evalRepo and schemaValidator are optional.
func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	geminiService GeminiService,
	pdfParser PDFParserService,
	normalizer ResponseNormalizer,
	schemaValidator SchemaValidator,
	configErr error,
) EvaluatorService {
	if geminiService == nil && configErr == nil {
		configErr = ErrMissingAPIKey
	}

	return &evaluatorService{
		evalRepo:        evalRepo,
		geminiService:   geminiService,
		pdfParser:       pdfParser,
		normalizer:      normalizer,
		schemaValidator: schemaValidator,
		promptBuilder:   NewPromptBuilder(),
		configErr:       configErr,
	}
}

func (e *evaluatorService) ConfigError() error {
	return e.configErr
}

func (e *evaluatorService) Evaluate(ctx context.Context, submission Submission) *Outcome {
	outcome := &Outcome{ID: uuid.New(), Stage: StageIdle}
	defer e.record(outcome)

	log.Printf("🔄 Starting evaluation %s\n", outcome.ID)

	if submission.UploadErr != nil {
		log.Printf("⚠️  Evaluation %s: upload rejected: %v\n", outcome.ID, submission.UploadErr)
		return outcome.fail(KindUpload, SeverityWarning, uploadMessage(submission.UploadErr))
	}

	if submission.Document == nil {
		return outcome.fail(KindUpload, SeverityWarning, MsgMissingDocument)
	}
	outcome.DocumentName = submission.Document.Name

	if e.configErr != nil {
		return outcome.fail(KindConfiguration, SeverityError, ConfigMessage(e.configErr))
	}

	// Step 1: Extract résumé text
	outcome.Stage = StageExtracting
	log.Printf("📄 Evaluation %s: extracting %q\n", outcome.ID, outcome.DocumentName)
	resumeText, err := e.pdfParser.ExtractText(submission.Document.Reader, submission.Document.Size)
	if err != nil {
		log.Printf("❌ Evaluation %s: failed to read PDF: %v\n", outcome.ID, err)
		if !errors.Is(err, ErrNoTextContent) {
			outcome.addNotice(SeverityError, fmt.Sprintf("Error reading PDF: %v", err))
		}
		resumeText = ""
	}
	if resumeText == "" {
		return outcome.fail(KindExtraction, SeverityWarning, MsgNoText)
	}

	// Step 2: Build prompt
	outcome.Stage = StagePrompting
	prompt := e.promptBuilder.BuildATSPrompt(resumeText, submission.JobDescription)
	log.Printf("📝 Evaluation %s: prompt length %d characters\n", outcome.ID, len(prompt))

	// Step 3: Generate
	outcome.Stage = StageGenerating
	log.Printf("🤖 Evaluation %s: calling the model...\n", outcome.ID)
	reply, err := e.geminiService.GenerateText(ctx, prompt)
	if err != nil {
		return outcome.fail(KindGeneration, SeverityError, fmt.Sprintf("Error generating content: %v", err))
	}
	if strings.TrimSpace(reply) == "" {
		return outcome.fail(KindGeneration, SeverityWarning, MsgEmptyReply)
	}
	outcome.RawReply = reply
	log.Printf("✅ Evaluation %s: reply received, %d characters\n", outcome.ID, len(reply))

	// Step 4: Normalize
	outcome.Stage = StageNormalizing
	normalized, err := e.normalizer.Normalize(reply)
	if err != nil {
		log.Printf("❌ Evaluation %s: %v\n", outcome.ID, err)
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			outcome.CleanedReply = decodeErr.Cleaned
		}
		return outcome.fail(KindParse, SeverityError, err.Error())
	}
	outcome.CleanedReply = normalized.Cleaned

	if e.schemaValidator != nil {
		if err := e.schemaValidator.Validate(normalized.Fields); err != nil {
			log.Printf("⚠️  Evaluation %s: %v\n", outcome.ID, err)
			outcome.addNotice(SeverityWarning, MsgSchemaMismatch)
		} else {
			outcome.SchemaValid = true
		}
	}

	outcome.Result = normalized.Result
	outcome.Stage = StageRendered
	log.Printf("✅ Evaluation %s completed\n", outcome.ID)

	return outcome
}

func (e *evaluatorService) record(outcome *Outcome) {
	if e.evalRepo == nil {
		return
	}

	if err := e.evalRepo.Create(NewEvaluationRecord(outcome)); err != nil {
		log.Printf("⚠️  Failed to save evaluation %s: %v\n", outcome.ID, err)
	}
}

// NewEvaluationRecord converts an outcome into its history row.
func NewEvaluationRecord(outcome *Outcome) *models.EvaluationRecord {
	record := &models.EvaluationRecord{
		ID:              outcome.ID,
		Status:          models.StatusRendered,
		DocumentName:    outcome.DocumentName,
		MissingKeywords: []string{},
		SkillGaps:       []string{},
		SchemaValid:     outcome.SchemaValid,
	}

	if outcome.Failed() {
		record.Status = models.StatusFailed
		record.ErrorKind = string(outcome.Kind)
		if n := len(outcome.Notices); n > 0 {
			message := outcome.Notices[n-1].Message
			record.ErrorMessage = &message
		}
	}

	if result := outcome.Result; result != nil {
		record.OverallATSScore = &result.OverallATSScore
		record.JDMatch = &result.JDMatch
		record.MissingKeywords = result.MissingKeywords
		record.SkillGaps = result.SkillGaps
		record.ProfileSummary = &result.ProfileSummary
	}

	return record
}

func uploadMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFile):
		return "Only PDF resumes are supported. Please upload a .pdf file."
	case errors.Is(err, ErrFileTooLarge):
		return fmt.Sprintf("Resume %v.", err)
	default:
		return fmt.Sprintf("Could not read the uploaded file: %v", err)
	}
}

// ConfigMessage is the user-facing text for a startup configuration problem.
func ConfigMessage(err error) string {
	if errors.Is(err, ErrMissingAPIKey) {
		return MsgMissingAPIKey
	}
	return err.Error()
}
