package models

import (
	"time"

	"github.com/google/uuid"
)

// Canonical keys of the model reply after key normalization.
const (
	KeyOverallATSScore = "OverallATSScore"
	KeyJDMatch         = "JDMatch"
	KeyMissingKeywords = "MissingKeywords"
	KeySkillGaps       = "SkillGaps"
	KeyProfileSummary  = "ProfileSummary"
)

// NotAvailable is shown for scalar fields the model left out.
const NotAvailable = "N/A"

type EvaluationStatus string

const (
	StatusRendered EvaluationStatus = "rendered"
	StatusFailed   EvaluationStatus = "failed"
)

// EvaluationResult is the normalized evaluation produced from one model reply.
type EvaluationResult struct {
	OverallATSScore string   `json:"overall_ats_score"`
	JDMatch         string   `json:"jd_match"`
	MissingKeywords []string `json:"missing_keywords"`
	SkillGaps       []string `json:"skill_gaps"`
	ProfileSummary  string   `json:"profile_summary"`
}

// EvaluationRecord is the history row written after each submission when
// history is enabled. It never holds the résumé text or the document.
type EvaluationRecord struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Status          EvaluationStatus `gorm:"type:text;not null" json:"status"`
	ErrorKind       string           `gorm:"type:text" json:"error_kind,omitempty"`
	ErrorMessage    *string          `gorm:"type:text" json:"error_message,omitempty"`
	DocumentName    string           `gorm:"type:text" json:"document_name"`
	OverallATSScore *string          `gorm:"type:text" json:"overall_ats_score,omitempty"`
	JDMatch         *string          `gorm:"type:text" json:"jd_match,omitempty"`
	MissingKeywords []string         `gorm:"serializer:json" json:"missing_keywords"`
	SkillGaps       []string         `gorm:"serializer:json" json:"skill_gaps"`
	ProfileSummary  *string          `gorm:"type:text" json:"profile_summary,omitempty"`
	SchemaValid     bool             `gorm:"not null;default:false" json:"schema_valid"`
	CreatedAt       time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (EvaluationRecord) TableName() string {
	return "evaluation_records"
}
