package services

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrNoTextContent = errors.New("no text content found in PDF")

type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
	ExtractTextFromFile(filePath string) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText returns the text of every page in page order, trimmed.
func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (text string, err error) {
	// ledongthuc/pdf panics on some malformed documents
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	if size <= 0 {
		return "", fmt.Errorf("failed to open PDF: empty document")
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	return readPages(reader)
}

func (p *pdfParserService) ExtractTextFromFile(filePath string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	f, reader, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	return readPages(reader)
}

func readPages(reader *pdf.Reader) (string, error) {
	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		// blank line between pages so words at page edges stay apart
		textBuilder.WriteString("\n\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", ErrNoTextContent
	}

	return text, nil
}
