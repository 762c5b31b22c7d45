package extraction

import (
	"context"
	"time"
)

// Extractor is the opaque structured-extraction service. It returns the
// raw decoded JSON object from the model; Normalize turns that into a
// fully-defaulted Result. This interface enables mocking in tests.
type Extractor interface {
	Extract(ctx context.Context, text string, anchor time.Time) (map[string]any, error)
}

// Transcriber is the opaque text-from-audio service.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filenameHint string) (string, error)
}
