package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/smart-ats/internal/services"
)

type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, submission services.Submission) *services.Outcome {
	args := m.Called(ctx, submission)
	return args.Get(0).(*services.Outcome)
}

func (m *MockEvaluator) ConfigError() error {
	args := m.Called()
	return args.Error(0)
}
