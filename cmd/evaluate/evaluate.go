package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/smart-ats/internal/config"
	"alfredoptarigan/smart-ats/internal/services"
	"alfredoptarigan/smart-ats/internal/views"
)

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	pdfParser := services.NewPDFParserService()
	out := cmd.OutOrStdout()

	if extractOnly {
		return extractFiles(pdfParser, args, out)
	}

	jobDescription, err := readJobDescription(jdFile, jdText)
	if err != nil {
		return err
	}

	geminiService, configErr := services.NewGeminiService(cfg.Gemini)

	schemaValidator, err := services.NewSchemaValidator()
	if err != nil {
		return fmt.Errorf("failed to build schema validator: %w", err)
	}

	evaluator := services.NewEvaluatorService(
		nil,
		geminiService,
		pdfParser,
		services.NewResponseNormalizer(),
		schemaValidator,
		configErr,
	)

	failCount := evaluateFiles(cmd.Context(), evaluator, jobDescription, args, cfg.Storage.MaxFileSize, out)

	log.Printf("\n✅ Evaluation completed!")
	log.Printf("   Success: %d", len(args)-failCount)
	log.Printf("   Failed: %d", failCount)

	if failCount > 0 {
		return fmt.Errorf("%d of %d evaluations failed", failCount, len(args))
	}
	return nil
}

func readJobDescription(path, text string) (string, error) {
	if path == "" {
		return text, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return string(content), nil
}

// evaluateFiles runs each résumé through the pipeline in order and returns
// the number of failed evaluations.
func evaluateFiles(
	ctx context.Context,
	evaluator services.EvaluatorService,
	jobDescription string,
	paths []string,
	maxFileSize int64,
	w io.Writer,
) int {
	failCount := 0
	for _, path := range paths {
		fmt.Fprintf(w, "\n📄 %s\n", path)

		outcome := evaluateFile(ctx, evaluator, jobDescription, path, maxFileSize)
		if err := views.RenderText(w, outcome); err != nil {
			log.Printf("❌ Failed to print report for %s: %v", path, err)
		}

		if outcome.Failed() {
			failCount++
		}
	}

	return failCount
}

func evaluateFile(ctx context.Context, evaluator services.EvaluatorService, jobDescription, path string, maxFileSize int64) *services.Outcome {
	submission := services.Submission{JobDescription: jobDescription}

	doc, closeFn, err := openDocument(path, maxFileSize)
	if err != nil {
		submission.UploadErr = err
		return evaluator.Evaluate(ctx, submission)
	}
	defer closeFn()

	submission.Document = doc
	return evaluator.Evaluate(ctx, submission)
}

func openDocument(path string, maxFileSize int64) (*services.Document, func() error, error) {
	if ext := filepath.Ext(path); !services.IsPDFExtension(ext) {
		return nil, nil, fmt.Errorf("invalid file extension %q: %w", ext, services.ErrUnsupportedFile)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.Size() > maxFileSize {
		file.Close()
		return nil, nil, fmt.Errorf("%w: max size is %d bytes", services.ErrFileTooLarge, maxFileSize)
	}

	return &services.Document{
		Name:   filepath.Base(path),
		Reader: file,
		Size:   info.Size(),
	}, file.Close, nil
}

func extractFiles(pdfParser services.PDFParserService, paths []string, w io.Writer) error {
	failCount := 0
	for _, path := range paths {
		text, err := pdfParser.ExtractTextFromFile(path)
		if err != nil {
			log.Printf("❌ Failed to extract %s: %v", path, err)
			failCount++
			continue
		}
		fmt.Fprintf(w, "📄 %s\n%s\n\n", path, text)
	}

	if failCount > 0 {
		return fmt.Errorf("%d of %d extractions failed", failCount, len(paths))
	}
	return nil
}
