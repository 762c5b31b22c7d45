package gemini

import (
	"context"
	"path/filepath"
	"strings"

	"google.golang.org/genai"

	"taka-tracker/internal/extraction"
)

// Transcribe sends the raw audio bytes inline to the model and returns
// the plain-text transcript.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filenameHint string) (string, error) {
	if len(audio) == 0 {
		return "", &extraction.TranscriptionError{Reason: "empty audio payload"}
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: "Transcribe this voice note exactly as spoken. " +
					"Return only the transcript text, nothing else."},
				{
					InlineData: &genai.Blob{
						MIMEType: audioMIMEType(filenameHint),
						Data:     audio,
					},
				},
			},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", &extraction.TranscriptionError{Reason: "generate content", Err: err}
	}

	transcript := strings.TrimSpace(resp.Text())
	if transcript == "" {
		return "", &extraction.TranscriptionError{Reason: "empty transcript"}
	}
	return transcript, nil
}

func audioMIMEType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return "audio/wav"
	case ".ogg", ".oga":
		return "audio/ogg"
	case ".m4a", ".aac":
		return "audio/aac"
	case ".flac":
		return "audio/flac"
	case ".webm":
		return "audio/webm"
	default:
		return "audio/mpeg"
	}
}
