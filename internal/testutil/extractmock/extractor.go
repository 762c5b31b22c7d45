package extractmock

import (
	"context"
	"errors"
	"time"
)

var errUnimplemented = errors.New("extractmock: method not implemented")

// Extractor is a function-backed mock for extraction.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, text string, anchor time.Time) (map[string]any, error)
}

func (m *Extractor) Extract(ctx context.Context, text string, anchor time.Time) (map[string]any, error) {
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, text, anchor)
	}
	return nil, errUnimplemented
}

// Transcriber is a function-backed mock for extraction.Transcriber.
type Transcriber struct {
	TranscribeFn func(ctx context.Context, audio []byte, filenameHint string) (string, error)
}

func (m *Transcriber) Transcribe(ctx context.Context, audio []byte, filenameHint string) (string, error) {
	if m.TranscribeFn != nil {
		return m.TranscribeFn(ctx, audio, filenameHint)
	}
	return "", errUnimplemented
}
