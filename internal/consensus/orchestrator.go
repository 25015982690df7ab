// Package consensus runs the bounded peer-review loop among simulated
// specialists: consultation, per-specialist opinions, diagnostic synthesis,
// then up to three review passes before the final integration step.
package consensus

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medgraphlab/smra/internal/llm"
	"github.com/medgraphlab/smra/internal/prompts"
)

// MaxIterations bounds the review loop. Model-driven convergence has no
// decidable halting condition, so the loop trades completeness for
// guaranteed termination.
const MaxIterations = 3

// Session is the transient state of one question. It is created per item and
// never shared across items.
type Session struct {
	ID               string
	Question         string
	SceneDescription string
	Opinions         string
	Diagnosis        string
	Iteration        int
	Converged        bool
}

type Orchestrator struct {
	engine        llm.Engine
	maxIterations int
	log           *zap.SugaredLogger
}

func New(engine llm.Engine, log *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		engine:        engine,
		maxIterations: MaxIterations,
		log:           log,
	}
}

// Run walks the full state machine for one question and returns the final
// answer. Model failures propagate; the caller owns the per-item boundary.
func (o *Orchestrator) Run(ctx context.Context, question, description string) (string, error) {
	s := &Session{
		ID:               uuid.NewString(),
		Question:         question,
		SceneDescription: description,
	}
	log := o.log.With("session", s.ID)

	// CONSULT: a general practitioner proposes the specialist panel.
	consultation, err := o.engine.Respond(ctx, prompts.Consultation(question, description), nil)
	if err != nil {
		return "", fmt.Errorf("consultation: %w", err)
	}
	log.Debugw("consultation complete", "chars", len(consultation))

	// OPINE: the panel answers, one section per specialist.
	s.Opinions, err = o.engine.Respond(ctx, prompts.Opinions(question, description, consultation), nil)
	if err != nil {
		return "", fmt.Errorf("specialist opinions: %w", err)
	}

	// DIAGNOSE: the diagnostic expert synthesizes the opinions.
	s.Diagnosis, err = o.engine.Respond(ctx, prompts.Diagnosis(question, description, s.Opinions), nil)
	if err != nil {
		return "", fmt.Errorf("diagnosis: %w", err)
	}

	// REVIEW(i): bounded critique/feedback loop.
	for i := 0; i < o.maxIterations; i++ {
		s.Iteration = i
		proceed, err := o.review(ctx, s, i)
		if err != nil {
			return "", fmt.Errorf("review iteration %d: %w", i+1, err)
		}
		if !proceed {
			s.Converged = true
			log.Debugw("opinions converged", "iteration", i+1)
			break
		}
	}

	// INTEGRATE: final answer from the (possibly updated) opinions and
	// diagnosis.
	combined := s.Opinions + "\n\n" + s.Diagnosis
	answer, err := o.engine.Respond(ctx, prompts.Integration(question, description, combined), nil)
	if err != nil {
		return "", fmt.Errorf("integration: %w", err)
	}
	log.Debugw("session complete", "converged", s.Converged, "iterations", s.Iteration+1)
	return answer, nil
}

// review runs one critique pass. It returns false when the reviewer judges
// all opinions consistent.
func (o *Orchestrator) review(ctx context.Context, s *Session, iteration int) (bool, error) {
	var prompt string
	if iteration == 0 {
		prompt = prompts.Evaluation(s.Question, s.SceneDescription, s.Diagnosis, s.Opinions)
	} else {
		prompt = prompts.EvaluationFollowup(s.Question, s.SceneDescription, s.Opinions, s.Diagnosis)
	}

	evaluation, err := o.engine.Respond(ctx, prompt, nil)
	if err != nil {
		return false, err
	}

	verdict := parseReview(evaluation)
	if verdict.Converged {
		return false, nil
	}

	if verdict.SpecialistFeedback != "" {
		updated, err := o.updateSpecialistOpinions(ctx, s, verdict.SpecialistFeedback)
		if err != nil {
			return false, err
		}
		s.Opinions = updated
	}

	if verdict.HasDiagnosticFeedback {
		s.Diagnosis, err = o.engine.Respond(ctx,
			prompts.DiagnosticReassessment(s.Question, s.SceneDescription, s.Opinions), nil)
		if err != nil {
			return false, err
		}
	}

	return true, nil
}

// updateSpecialistOpinions re-consults only the specialists named verbatim in
// the feedback; the rest keep their prior opinion text unchanged. Updates run
// sequentially in the order specialists were parsed.
func (o *Orchestrator) updateSpecialistOpinions(ctx context.Context, s *Session, feedback string) (string, error) {
	sections := splitSpecialists(s.Opinions)
	if len(sections) == 0 {
		return s.Opinions, nil
	}

	updated := make([]string, 0, len(sections))
	for _, sec := range sections {
		if sec.Name != "" && containsName(feedback, sec.Name) {
			opinion, err := o.engine.Respond(ctx,
				prompts.SpecialistRethink(s.Question, s.SceneDescription, feedback), nil)
			if err != nil {
				return "", fmt.Errorf("rethink for %s: %w", sec.Name, err)
			}
			updated = append(updated, fmt.Sprintf("Expert: %s\n%s", sec.Name, opinion))
		} else {
			updated = append(updated, "Expert: "+sec.Text)
		}
	}
	return joinSections(updated), nil
}
