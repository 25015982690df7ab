package consensus

import (
	"encoding/json"
	"strings"

	"github.com/medgraphlab/smra/internal/common"
)

const (
	convergencePhrase        = "all opinions are consistent"
	specialistFeedbackMarker = "Feedback to Specialist Experts:"
	diagnosticFeedbackMarker = "Feedback to Diagnostic Specialist:"
)

// reviewVerdict is the outcome of one review pass.
type reviewVerdict struct {
	Converged             bool
	SpecialistFeedback    string
	HasDiagnosticFeedback bool
}

type structuredVerdict struct {
	Converged          bool   `json:"converged"`
	SpecialistFeedback string `json:"specialist_feedback"`
	DiagnosticFeedback string `json:"diagnostic_feedback"`
}

// parseReview prefers the structured JSON verdict the review prompt allows.
// When the response is prose, it falls back to the legacy marker scan so
// unchanged upstream prompts keep working.
func parseReview(evaluation string) reviewVerdict {
	if raw, err := common.ParseJSON[map[string]json.RawMessage](evaluation); err == nil {
		// Only treat the object as a verdict when it actually carries the
		// converged key; prose can contain unrelated JSON.
		if _, ok := raw["converged"]; ok {
			if v, err := common.ParseJSON[structuredVerdict](evaluation); err == nil {
				return reviewVerdict{
					Converged:             v.Converged,
					SpecialistFeedback:    strings.TrimSpace(v.SpecialistFeedback),
					HasDiagnosticFeedback: strings.TrimSpace(v.DiagnosticFeedback) != "",
				}
			}
		}
	}

	if strings.Contains(strings.ToLower(evaluation), convergencePhrase) {
		return reviewVerdict{Converged: true}
	}

	var verdict reviewVerdict
	if start := strings.Index(evaluation, specialistFeedbackMarker); start != -1 {
		end := strings.Index(evaluation, diagnosticFeedbackMarker)
		if end == -1 || end < start {
			end = len(evaluation)
		}
		verdict.SpecialistFeedback = strings.TrimSpace(evaluation[start:end])
	}
	verdict.HasDiagnosticFeedback = strings.Contains(evaluation, diagnosticFeedbackMarker)
	return verdict
}
