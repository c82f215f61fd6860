package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"alfredoptarigan/smart-ats/internal/models"
)

var (
	codeFencePattern  = regexp.MustCompile("(?i)```json|```")
	whitespacePattern = regexp.MustCompile(`[\s\v\p{Z}]+`)
	quoteReplacer     = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)
)

var canonicalKeys = []string{
	models.KeyOverallATSScore,
	models.KeyJDMatch,
	models.KeyMissingKeywords,
	models.KeySkillGaps,
	models.KeyProfileSummary,
}

// DecodeError is returned when the cleaned reply is not a JSON object.
type DecodeError struct {
	Cleaned string
	Err     error
}

func (e *DecodeError) Error() string {
	var syntaxErr *json.SyntaxError
	if errors.As(e.Err, &syntaxErr) {
		return fmt.Sprintf("Invalid JSON format: %v (offset %d)", e.Err, syntaxErr.Offset)
	}
	return fmt.Sprintf("Invalid JSON format: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NormalizedReply is a reply that parsed as a JSON object.
type NormalizedReply struct {
	Cleaned string
	// Fields maps normalized keys to their raw JSON values.
	Fields map[string]json.RawMessage
	Result *models.EvaluationResult
}

type ResponseNormalizer interface {
	Normalize(raw string) (*NormalizedReply, error)
}

type responseNormalizer struct{}

func NewResponseNormalizer() ResponseNormalizer {
	return &responseNormalizer{}
}

func (n *responseNormalizer) Normalize(raw string) (*NormalizedReply, error) {
	cleaned := CleanResponse(raw)

	fields, err := decodeObject(cleaned)
	if err != nil {
		return nil, &DecodeError{Cleaned: cleaned, Err: err}
	}

	normalized := make(map[string]json.RawMessage, len(fields))
	for _, field := range fields {
		// later duplicates win
		normalized[NormalizeKey(field.key)] = field.value
	}

	return &NormalizedReply{
		Cleaned: cleaned,
		Fields:  normalized,
		Result:  buildResult(normalized),
	}, nil
}

// CleanResponse strips code fences, collapses whitespace and straightens
// typographic quotes. CleanResponse(CleanResponse(s)) == CleanResponse(s).
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = codeFencePattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = quoteReplacer.Replace(text)
	return strings.TrimSpace(text)
}

// NormalizeKey removes whitespace and quote characters from a reply key,
// so "JD Match", `"JDMatch"` and JDMatch all become JDMatch.
func NormalizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '"', '\'', '“', '”', '‘', '’':
			return -1
		}
		return r
	}, key)
}

type objectField struct {
	key   string
	value json.RawMessage
}

// decodeObject parses a top-level JSON object keeping its key order.
func decodeObject(text string) ([]objectField, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty reply")
		}
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var fields []objectField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected an object key, got %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, objectField{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("extra data after JSON object")
	}

	return fields, nil
}

func buildResult(fields map[string]json.RawMessage) *models.EvaluationResult {
	return &models.EvaluationResult{
		OverallATSScore: scalarField(fields, models.KeyOverallATSScore),
		JDMatch:         scalarField(fields, models.KeyJDMatch),
		MissingKeywords: listField(fields, models.KeyMissingKeywords),
		SkillGaps:       listField(fields, models.KeySkillGaps),
		ProfileSummary:  scalarField(fields, models.KeyProfileSummary),
	}
}

func scalarField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return models.NotAvailable
	}

	value, ok := scalarText(raw)
	if !ok {
		return models.NotAvailable
	}
	return value
}

func listField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		// a lone value stands for a one-item list
		if value, ok := scalarText(raw); ok && value != "" {
			return []string{value}
		}
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if value, ok := scalarText(item); ok {
			out = append(out, value)
		}
	}
	return out
}

// scalarText renders a JSON value as display text. ok is false for null.
func scalarText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s, true
		}
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, trimmed); err != nil {
		return string(trimmed), true
	}
	return compacted.String(), true
}
