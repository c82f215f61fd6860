package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/smart-ats/internal/models"
)

const scenarioReply = "```json {\"OverallATSScore\":\"82%\",\"JDMatch\":\"75%\",\"MissingKeywords\":[\"Docker\"],\"SkillGaps\":[\"Leadership\"],\"ProfileSummary\":\"Solid backend candidate\"} ```"

func TestNormalize_FencedScenario(t *testing.T) {
	reply, err := NewResponseNormalizer().Normalize(scenarioReply)
	require.NoError(t, err)

	assert.NotContains(t, reply.Cleaned, "`")
	assert.NotContains(t, reply.Cleaned, "\n")
	assert.Len(t, reply.Fields, 5)
	assert.Equal(t, &models.EvaluationResult{
		OverallATSScore: "82%",
		JDMatch:         "75%",
		MissingKeywords: []string{"Docker"},
		SkillGaps:       []string{"Leadership"},
		ProfileSummary:  "Solid backend candidate",
	}, reply.Result)
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence with newlines",
			input:    "```json\n{\n  \"JDMatch\": \"75%\"\n}\n```",
			expected: `{ "JDMatch": "75%" }`,
		},
		{
			name:     "bare fence",
			input:    "```\n{\"a\":1}\n```",
			expected: `{"a":1}`,
		},
		{
			name:     "upper case language tag",
			input:    "```JSON\n{\"a\":1}```",
			expected: `{"a":1}`,
		},
		{
			name:     "carriage returns and tabs",
			input:    "{\"a\":\r\n\t1}",
			expected: `{"a": 1}`,
		},
		{
			name:     "typographic quotes",
			input:    "{“ProfileSummary”:“It’s a ‘fit’”}",
			expected: `{"ProfileSummary":"It's a 'fit'"}`,
		},
		{
			name:     "plain text",
			input:    "  not json   at all \n",
			expected: "not json at all",
		},
		{
			name:     "empty",
			input:    " \n ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanResponse(tt.input))
		})
	}
}

func TestCleanResponse_FencesEquivalentToStripped(t *testing.T) {
	bodies := []string{
		`{"OverallATSScore":"82%","JDMatch":"75%"}`,
		"{\n  \"MissingKeywords\": [\"Docker\",\n \"Kubernetes\"]\n}",
		"not json at all",
		"{\"ProfileSummary\":\"line one\r\nline two\"}",
	}

	for _, body := range bodies {
		collapsed := strings.Join(strings.Fields(body), " ")
		for _, wrapped := range []string{
			"```json\n" + body + "\n```",
			"```" + body + "```",
			"  ```json " + body + " ```  ",
		} {
			cleaned := CleanResponse(wrapped)
			assert.Equal(t, collapsed, cleaned)
			assert.Equal(t, cleaned, CleanResponse(cleaned), "cleaning must be idempotent")
		}
	}
}

func TestNormalize_TypographicQuotesMatchStraightQuotes(t *testing.T) {
	straight := `{"OverallATSScore":"70%","JDMatch":"64%","MissingKeywords":["Go","gRPC"],"SkillGaps":[],"ProfileSummary":"Good fit"}`
	curly := `{“OverallATSScore”:“70%”,“JDMatch”:“64%”,“MissingKeywords”:[“Go”,“gRPC”],“SkillGaps”:[],“ProfileSummary”:“Good fit”}`

	normalizer := NewResponseNormalizer()
	fromStraight, err := normalizer.Normalize(straight)
	require.NoError(t, err)
	fromCurly, err := normalizer.Normalize(curly)
	require.NoError(t, err)

	assert.Equal(t, fromStraight.Result, fromCurly.Result)
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`Overall ATS Score`, models.KeyOverallATSScore},
		{`OverallATSScore"`, models.KeyOverallATSScore},
		{`"OverallATSScore"`, models.KeyOverallATSScore},
		{`JD Match`, models.KeyJDMatch},
		{`"JD Match"`, models.KeyJDMatch},
		{`JDMatch`, models.KeyJDMatch},
		{`'Skill Gaps'`, models.KeySkillGaps},
		{"Missing\tKeywords", models.KeyMissingKeywords},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeKey(tt.input))
		})
	}
}

func TestNormalize_KeyVariantsResolveToCanonicalFields(t *testing.T) {
	reply := `{"Overall ATS Score":"90%","JD Match":"80%","OverallATSScore\"":"91%","Missing Keywords":["Terraform"],"Skill Gaps":["Mentoring"],"Profile Summary":"Strong"}`

	normalized, err := NewResponseNormalizer().Normalize(reply)
	require.NoError(t, err)

	assert.Contains(t, normalized.Fields, models.KeyOverallATSScore)
	assert.Contains(t, normalized.Fields, models.KeyJDMatch)
	assert.Len(t, normalized.Fields, 5)
	// the later variant wins
	assert.Equal(t, "91%", normalized.Result.OverallATSScore)
	assert.Equal(t, "80%", normalized.Result.JDMatch)
	assert.Equal(t, []string{"Terraform"}, normalized.Result.MissingKeywords)
	assert.Equal(t, []string{"Mentoring"}, normalized.Result.SkillGaps)
	assert.Equal(t, "Strong", normalized.Result.ProfileSummary)
}

func TestNormalize_Defaults(t *testing.T) {
	normalized, err := NewResponseNormalizer().Normalize(`{"ProfileSummary":null}`)
	require.NoError(t, err)

	assert.Equal(t, models.NotAvailable, normalized.Result.OverallATSScore)
	assert.Equal(t, models.NotAvailable, normalized.Result.JDMatch)
	assert.Equal(t, models.NotAvailable, normalized.Result.ProfileSummary)
	assert.NotNil(t, normalized.Result.MissingKeywords)
	assert.Empty(t, normalized.Result.MissingKeywords)
	assert.NotNil(t, normalized.Result.SkillGaps)
	assert.Empty(t, normalized.Result.SkillGaps)
}

func TestNormalize_EmptyStringIsKept(t *testing.T) {
	normalized, err := NewResponseNormalizer().Normalize(`{"OverallATSScore":"","ProfileSummary":""}`)
	require.NoError(t, err)

	assert.Equal(t, "", normalized.Result.OverallATSScore)
	assert.Equal(t, "", normalized.Result.ProfileSummary)
	assert.Equal(t, models.NotAvailable, normalized.Result.JDMatch)
}

func TestNormalize_ValueCoercion(t *testing.T) {
	reply := `{"OverallATSScore":82,"JDMatch":0.75,"MissingKeywords":"Docker","SkillGaps":["Go",3,null,{"a":1}],"ProfileSummary":true}`

	normalized, err := NewResponseNormalizer().Normalize(reply)
	require.NoError(t, err)

	assert.Equal(t, "82", normalized.Result.OverallATSScore)
	assert.Equal(t, "0.75", normalized.Result.JDMatch)
	assert.Equal(t, []string{"Docker"}, normalized.Result.MissingKeywords)
	assert.Equal(t, []string{"Go", "3", `{"a":1}`}, normalized.Result.SkillGaps)
	assert.Equal(t, "true", normalized.Result.ProfileSummary)
}

func TestNormalize_DecodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		cleaned string
	}{
		{name: "plain text", input: "not json at all", cleaned: "not json at all"},
		{name: "empty", input: "``` ```", cleaned: ""},
		{name: "array", input: `["a","b"]`, cleaned: `["a","b"]`},
		{name: "truncated", input: "```json\n{\"JDMatch\": \"75%\"", cleaned: `{"JDMatch": "75%"`},
		{name: "trailing prose", input: `{"JDMatch":"75%"} Hope this helps!`, cleaned: `{"JDMatch":"75%"} Hope this helps!`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := NewResponseNormalizer().Normalize(tt.input)
			require.Error(t, err)
			assert.Nil(t, reply)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.cleaned, decodeErr.Cleaned)
			assert.Contains(t, err.Error(), "Invalid JSON format")
		})
	}
}
