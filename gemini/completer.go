// Package gemini implements referent.Completer and referent.TokenCounter
// on top of Google Gemini.
package gemini

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/referent"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements referent.Completer at compile time.
var _ referent.Completer = (*Completer)(nil)

// Completer implements referent.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete sends the request to Gemini and returns the generated text.
func (c *Completer) Complete(ctx context.Context, req referent.CompletionRequest) (*referent.Completion, error) {
	if strings.TrimSpace(req.User) == "" {
		return nil, referent.Errorf(referent.EINVALID, "text required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(req.User, genai.RoleUser)},
		BuildConfig(req),
	)
	if err != nil {
		return nil, wrapError(err)
	}
	if result == nil {
		return nil, referent.Errorf(referent.EMALFORMED, "gemini returned nil result")
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, referent.Errorf(referent.EMALFORMED, "gemini returned no text")
	}

	completion := &referent.Completion{
		Text:  text,
		Model: c.model,
	}
	if result.ModelVersion != "" {
		completion.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		completion.Usage = referent.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return completion, nil
}

// BuildConfig returns the GenerateContentConfig for a completion request.
func BuildConfig(req referent.CompletionRequest) *genai.GenerateContentConfig {
	temp := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	return config
}

func wrapError(err error) error {
	var apiErr genai.APIError
	switch {
	case errors.As(err, &apiErr):
		return referent.UpstreamErrorf(apiErr.Code, apiErr.Error(), "gemini: %s", apiErr.Message)
	case errors.Is(err, context.DeadlineExceeded):
		return referent.Errorf(referent.ETIMEOUT, "gemini request timed out")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return referent.Errorf(referent.ENETWORK, "gemini request failed: %v", err)
	}
}
