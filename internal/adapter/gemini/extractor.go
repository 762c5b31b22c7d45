package gemini

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"taka-tracker/internal/domain/ledger"
	"taka-tracker/internal/extraction"
)

const DefaultModelName = "gemini-2.0-flash"

// Client adapts the Gemini API to the extraction.Extractor and
// extraction.Transcriber interfaces. One client serves both; it is
// constructed once and injected into the usecases.
type Client struct {
	genai *genai.Client
	model string
	log   zerolog.Logger
}

func New(ctx context.Context, model string, log zerolog.Logger) (*Client, error) {
	if model == "" {
		model = DefaultModelName
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, err
	}
	return &Client{genai: c, model: model, log: log}, nil
}

// Extract sends the utterance to the model and returns the decoded raw
// JSON object. Defaulting happens in extraction.Normalize, not here.
func (c *Client) Extract(ctx context.Context, text string, anchor time.Time) (map[string]any, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildExtractionPrompt(text, anchor)}},
		},
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, &extraction.ExtractionError{Reason: "generate content", Err: err}
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, &extraction.ExtractionError{Reason: "empty response from model"}
	}

	clean := cleanModelJSON(rawText)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		c.log.Warn().Str("raw", rawText).Msg("model returned non-JSON payload")
		return nil, &extraction.ExtractionError{Reason: "non-JSON payload", Err: err}
	}
	return parsed, nil
}

func buildExtractionPrompt(text string, anchor time.Time) string {
	cats := make([]string, 0, len(ledger.Categories))
	for c := range ledger.Categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)

	var b strings.Builder
	b.WriteString("You are a personal-finance intent extractor for Bangladeshi users.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Classify the utterance below into exactly one intent: \"transaction\", \"new_loan\" or \"loan_repayment\".\n")
	b.WriteString("- Output STRICT JSON only (no comments, no extra text).\n")
	b.WriteString("- Output a single JSON object.\n\n")
	b.WriteString("For intent \"transaction\" include:\n")
	b.WriteString("- \"amount\": number\n")
	b.WriteString("- \"currency\": string (default \"BDT\")\n")
	b.WriteString("- \"category\": string, one of: " + strings.Join(cats, ", ") + "\n")
	b.WriteString("- \"notes\": string, short description\n")
	b.WriteString("- \"type\": \"expense\" or \"income\"\n")
	b.WriteString("- \"date\": string, ISO format \"YYYY-MM-DD\"\n\n")
	b.WriteString("For intent \"new_loan\" include:\n")
	b.WriteString("- \"lender_name\": string\n")
	b.WriteString("- \"loan_type\": \"bank\" or \"personal\"\n")
	b.WriteString("- \"principal_amount\": number\n")
	b.WriteString("- \"interest_rate\": number (percent, 0 if unknown)\n")
	b.WriteString("- \"tenure_months\": integer or null\n")
	b.WriteString("- \"monthly_installment\": number or null\n")
	b.WriteString("- \"currency\", \"date\", \"notes\" as above\n\n")
	b.WriteString("For intent \"loan_repayment\" include:\n")
	b.WriteString("- \"lender_name\": string\n")
	b.WriteString("- \"amount\", \"currency\", \"date\", \"notes\" as above\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Today is " + anchor.Format(extraction.DateLayout) + "; resolve relative dates against it.\n")
	b.WriteString("- If unsure about the intent, use \"transaction\".\n")
	b.WriteString("- Return ONLY valid raw JSON. Do NOT wrap the response in code fences.\n")
	b.WriteString("- Output must begin with \"{\" and end with \"}\".\n\n")
	b.WriteString("Utterance:\n")
	b.WriteString(text)
	return b.String()
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the raw-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
