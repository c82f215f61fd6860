package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildATSPrompt_ContainsShapeAndInputs(t *testing.T) {
	prompt := NewPromptBuilder().BuildATSPrompt("Go developer, 5 years", "Backend engineer with Docker")

	assert.Contains(t, prompt, "act like a highly experienced ATS")
	assert.Contains(t, prompt, `{"OverallATSScore":"%","JDMatch":"%","MissingKeywords":[],"SkillGaps":[],"ProfileSummary":""}`)
	assert.Contains(t, prompt, "resume:Go developer, 5 years\n")
	assert.Contains(t, prompt, "description:Backend engineer with Docker\n")
	assert.Less(t, strings.Index(prompt, "resume:"), strings.Index(prompt, "description:"))
}

func TestBuildATSPrompt_PassesDegenerateInputsThrough(t *testing.T) {
	prompt := NewPromptBuilder().BuildATSPrompt("", "")

	assert.Contains(t, prompt, "resume:\ndescription:\n")
}

func TestBuildATSPrompt_DoesNotInterpretInputs(t *testing.T) {
	resume := "100% test coverage {text} %s %d"
	jd := "{jd} needs 50%"

	prompt := NewPromptBuilder().BuildATSPrompt(resume, jd)

	assert.Contains(t, prompt, "resume:"+resume)
	assert.Contains(t, prompt, "description:"+jd)
	assert.NotContains(t, prompt, "%!")
}
