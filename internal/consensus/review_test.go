package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReviewConvergencePhrase(t *testing.T) {
	v := parseReview("After comparing the reports, ALL OPINIONS ARE CONSISTENT with each other.")
	assert.True(t, v.Converged)
}

func TestParseReviewSpecialistFeedbackSlice(t *testing.T) {
	text := "Review Analysis:\nsome analysis\n" +
		"Feedback to Specialist Experts:\nRadiologist: re-measure.\n" +
		"Feedback to Diagnostic Specialist:\nupdate the synthesis.\n"

	v := parseReview(text)
	assert.False(t, v.Converged)
	assert.Contains(t, v.SpecialistFeedback, "Radiologist: re-measure.")
	assert.NotContains(t, v.SpecialistFeedback, "update the synthesis")
	assert.True(t, v.HasDiagnosticFeedback)
}

func TestParseReviewSpecialistFeedbackToEndOfText(t *testing.T) {
	text := "Feedback to Specialist Experts:\nOncologist: reconsider staging."

	v := parseReview(text)
	assert.Contains(t, v.SpecialistFeedback, "reconsider staging")
	assert.False(t, v.HasDiagnosticFeedback)
}

func TestParseReviewDiagnosticOnly(t *testing.T) {
	v := parseReview("Feedback to Diagnostic Specialist:\nplease rethink.")
	assert.Empty(t, v.SpecialistFeedback)
	assert.True(t, v.HasDiagnosticFeedback)
}

func TestParseReviewStructuredVerdict(t *testing.T) {
	v := parseReview(`{"converged": false, "specialist_feedback": "Radiologist: look again", "diagnostic_feedback": "revise"}`)
	assert.False(t, v.Converged)
	assert.Equal(t, "Radiologist: look again", v.SpecialistFeedback)
	assert.True(t, v.HasDiagnosticFeedback)
}

func TestParseReviewIgnoresUnrelatedJSON(t *testing.T) {
	// Prose with an embedded object that is not a verdict still goes
	// through the legacy marker scan.
	text := `The scene graph {"objects": []} looks incomplete. All opinions are consistent.`

	v := parseReview(text)
	assert.True(t, v.Converged)
}
