package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedFile = errors.New("only PDF resumes are supported")
	ErrFileTooLarge    = errors.New("file too large")
)

// Document is an uploaded résumé held for the duration of one submission.
type Document struct {
	Name   string
	Reader io.ReaderAt
	Size   int64
}

type UploadService interface {
	// Open validates an uploaded file and returns it as a Document. The
	// returned close func must be called once the submission is done.
	Open(file *multipart.FileHeader) (*Document, func() error, error)
	MaxFileSize() int64
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

func (s *uploadService) MaxFileSize() int64 {
	return s.maxFileSize
}

func (s *uploadService) Open(file *multipart.FileHeader) (*Document, func() error, error) {
	if ext := filepath.Ext(file.Filename); !IsPDFExtension(ext) {
		return nil, nil, fmt.Errorf("invalid file extension %q: %w", ext, ErrUnsupportedFile)
	}

	if contentType := file.Header.Get("Content-Type"); contentType != "" &&
		contentType != "application/pdf" && contentType != "application/octet-stream" {
		return nil, nil, fmt.Errorf("invalid content type %q: %w", contentType, ErrUnsupportedFile)
	}

	if file.Size > s.maxFileSize {
		return nil, nil, fmt.Errorf("%w: max size is %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}

	return &Document{
		Name:   file.Filename,
		Reader: src,
		Size:   file.Size,
	}, src.Close, nil
}

func IsPDFExtension(ext string) bool {
	return strings.EqualFold(ext, ".pdf")
}
