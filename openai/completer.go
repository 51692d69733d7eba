// Package openai implements referent.Completer against OpenRouter's
// OpenAI-compatible chat completions API.
package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/referent"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	// DefaultBaseURL is the OpenRouter API endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1/"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "deepseek/deepseek-chat"

	// DefaultTitle identifies the application to OpenRouter.
	DefaultTitle = "Referent"
)

// Ensure Completer implements referent.Completer at compile time.
var _ referent.Completer = (*Completer)(nil)

// Completer implements referent.Completer using an OpenAI-compatible API.
type Completer struct {
	client openai.Client
	model  string
}

// Config holds the connection settings for a Completer.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string

	// AppURL and Title are sent as attribution headers.
	AppURL string
	Title  string
}

// NewCompleter creates a new Completer.
// Returns EUNAUTHORIZED when no API key is configured.
func NewCompleter(cfg Config, opts ...option.RequestOption) (*Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, referent.Errorf(referent.EUNAUTHORIZED, "OpenRouter API key is not configured")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHeader("X-Title", cfg.Title),
		option.WithMaxRetries(0),
	}
	if cfg.AppURL != "" {
		base = append(base, option.WithHeader("HTTP-Referer", cfg.AppURL))
	}

	return &Completer{
		client: openai.NewClient(append(base, opts...)...),
		model:  cfg.Model,
	}, nil
}

// Complete sends the request and returns the first choice's text.
func (c *Completer) Complete(ctx context.Context, req referent.CompletionRequest) (*referent.Completion, error) {
	if strings.TrimSpace(req.User) == "" {
		return nil, referent.Errorf(referent.EINVALID, "text required")
	}

	resp, err := c.client.Chat.Completions.New(ctx, BuildParams(c.model, req))
	if err != nil {
		return nil, wrapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, referent.Errorf(referent.EMALFORMED, "no choices in completion response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, referent.Errorf(referent.EMALFORMED, "empty completion response")
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}

	return &referent.Completion{
		Text:  text,
		Model: model,
		Usage: referent.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// BuildParams returns the chat completion parameters for a request.
func BuildParams(model string, req referent.CompletionRequest) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	return params
}

func wrapError(err error) error {
	var apiErr *openai.Error
	switch {
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = "request failed"
		}
		return referent.UpstreamErrorf(apiErr.StatusCode, apiErr.RawJSON(), "openrouter: %s", msg)
	case errors.Is(err, context.DeadlineExceeded):
		return referent.Errorf(referent.ETIMEOUT, "openrouter request timed out")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return referent.Errorf(referent.ENETWORK, "openrouter request failed: %v", err)
	}
}
