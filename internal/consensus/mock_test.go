package consensus

import (
	"context"

	"github.com/medgraphlab/smra/internal/llm"
)

// mockEngine replays queued responses and records every prompt it received.
// When the queue is empty it falls back to Response.
type mockEngine struct {
	Response string
	Queue    []string
	Err      error

	Prompts []string
}

func (m *mockEngine) Respond(ctx context.Context, prompt string, img *llm.Image) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Queue) > 0 {
		resp := m.Queue[0]
		m.Queue = m.Queue[1:]
		return resp, nil
	}
	return m.Response, nil
}
