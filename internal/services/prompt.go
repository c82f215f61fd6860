package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSPrompt fills the ATS evaluation template. Inputs are inserted
// verbatim, empty strings included.
func (pb *PromptBuilder) BuildATSPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`
Hey, act like a highly experienced ATS (Applicant Tracking System) with expertise in tech fields.
Your job is to evaluate the resume against the provided job description.

Ensure the response is returned in valid JSON format:
{"OverallATSScore":"%%","JDMatch":"%%","MissingKeywords":[],"SkillGaps":[],"ProfileSummary":""}

resume:%s
description:%s
`, resumeText, jobDescription)
}
