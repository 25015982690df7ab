package llm

import (
	"context"
	"strings"
)

// Image is an optional visual input to an engine.
type Image struct {
	Data []byte
	MIME string // e.g. "image/png"
}

// Format returns the image subtype ("png", "jpeg"), as some providers want
// it without the "image/" prefix.
func (i *Image) Format() string {
	return strings.TrimPrefix(i.MIME, "image/")
}

// Engine is the capability interface for a model backend. Language-only
// engines are called with a nil image. Calls are blocking and synchronous;
// cancellation comes from the context.
type Engine interface {
	Respond(ctx context.Context, prompt string, img *Image) (string, error)
}
