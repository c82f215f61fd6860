package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"
)

type MockPDFParser struct {
	mock.Mock
}

func (m *MockPDFParser) ExtractText(r io.ReaderAt, size int64) (string, error) {
	args := m.Called(r, size)
	return args.String(0), args.Error(1)
}

func (m *MockPDFParser) ExtractTextFromFile(filePath string) (string, error) {
	args := m.Called(filePath)
	return args.String(0), args.Error(1)
}
