package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/smart-ats/internal/models"
)

var ErrEvaluationNotFound = errors.New("evaluation not found")

type EvaluationRepository interface {
	Create(record *models.EvaluationRecord) error
	FindByID(id uuid.UUID) (*models.EvaluationRecord, error)
	FindRecent(limit int) ([]models.EvaluationRecord, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(record *models.EvaluationRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create evaluation record: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByID(id uuid.UUID) (*models.EvaluationRecord, error) {
	var record models.EvaluationRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &record, nil
}

func (r *evaluationRepository) FindRecent(limit int) ([]models.EvaluationRecord, error) {
	var records []models.EvaluationRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find recent evaluations: %w", err)
	}

	return records, nil
}
