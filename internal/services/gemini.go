package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/smart-ats/internal/config"
	"alfredoptarigan/smart-ats/internal/models"
)

var ErrMissingAPIKey = errors.New("gemini api key not configured")

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type geminiService struct {
	client       *genai.Client
	modelName    string
	temperature  float32
	strictSchema bool
}

func NewGeminiService(cfg config.GeminiConfig) (GeminiService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:       client,
		modelName:    cfg.Model,
		temperature:  cfg.Temperature,
		strictSchema: cfg.StrictSchema,
	}, nil
}

// GenerateText sends one prompt and returns the reply text. No retries.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if g.strictSchema {
		genConfig.ResponseMIMEType = "application/json"
		genConfig.ResponseSchema = EvaluationResponseSchema()
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	log.Printf("📊 Gemini response received\n")

	return resp.Text(), nil
}

// EvaluationResponseSchema describes the five-key reply requested from the model.
func EvaluationResponseSchema() *genai.Schema {
	stringList := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			models.KeyOverallATSScore: {Type: genai.TypeString, Description: "Overall ATS score as a percentage, e.g. 82%"},
			models.KeyJDMatch:         {Type: genai.TypeString, Description: "Job description match as a percentage"},
			models.KeyMissingKeywords: stringList,
			models.KeySkillGaps:       stringList,
			models.KeyProfileSummary:  {Type: genai.TypeString},
		},
		Required: append([]string(nil), canonicalKeys...),
	}
}
