package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptsEmbedInputs(t *testing.T) {
	question := "Is there a pleural effusion?"
	description := "left costophrenic angle is blunted"

	for name, prompt := range map[string]string{
		"description":  Description(question),
		"consultation": Consultation(question, description),
		"opinions":     Opinions(question, description, "Radiologist: assess the angle"),
		"diagnosis":    Diagnosis(question, description, "Expert: likely effusion"),
		"integration":  Integration(question, description, "combined opinions"),
	} {
		assert.Contains(t, prompt, question, "prompt %s", name)
	}
}

func TestRefinementIncludesKnowledge(t *testing.T) {
	prompt := Refinement(`{"objects": []}`, "**Knowledge about 'effusion':**")
	assert.Contains(t, prompt, `{"objects": []}`)
	assert.Contains(t, prompt, "**Knowledge about 'effusion':**")
}

func TestEvaluationPromptsCarryReviewContract(t *testing.T) {
	first := Evaluation("q", "d", "diag", "ops")
	followup := EvaluationFollowup("q", "d", "ops", "diag")

	for _, prompt := range []string{first, followup} {
		lower := strings.ToLower(prompt)
		assert.Contains(t, lower, "all opinions are consistent")
		assert.Contains(t, prompt, "Feedback to Specialist Experts:")
		assert.Contains(t, prompt, "Feedback to Diagnostic Specialist:")
	}
}

func TestFeedbackPromptsEmbedFeedback(t *testing.T) {
	rethink := SpecialistRethink("q", "d", "Radiologist should reconsider laterality")
	assert.Contains(t, rethink, "Radiologist should reconsider laterality")

	reassess := DiagnosticReassessment("q", "d", "updated opinions")
	assert.Contains(t, reassess, "updated opinions")
}
