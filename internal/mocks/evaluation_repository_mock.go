package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"alfredoptarigan/smart-ats/internal/models"
)

type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) Create(record *models.EvaluationRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockEvaluationRepository) FindByID(id uuid.UUID) (*models.EvaluationRecord, error) {
	args := m.Called(id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.EvaluationRecord), args.Error(1)
}

func (m *MockEvaluationRepository) FindRecent(limit int) ([]models.EvaluationRecord, error) {
	args := m.Called(limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.EvaluationRecord), args.Error(1)
}
