package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/mock"
	locslog "github.com/fwojciec/referent/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("logs model and token usage", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Completer{
			CompleteFn: func(context.Context, referent.CompletionRequest) (*referent.Completion, error) {
				return &referent.Completion{
					Text:  "summary",
					Model: "deepseek/deepseek-chat",
					Usage: referent.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
				}, nil
			},
		}

		c := locslog.NewLoggingCompleter(inner, logger)
		got, err := c.Complete(context.Background(), referent.CompletionRequest{User: "article", MaxTokens: 2000})

		require.NoError(t, err)
		assert.Equal(t, "summary", got.Text)
		output := buf.String()
		assert.Contains(t, output, "completion")
		assert.Contains(t, output, "model=deepseek/deepseek-chat")
		assert.Contains(t, output, "prompt_tokens=100")
		assert.Contains(t, output, "input_chars=7")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error code and status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Completer{
			CompleteFn: func(context.Context, referent.CompletionRequest) (*referent.Completion, error) {
				return nil, referent.UpstreamErrorf(429, "", "rate limited")
			},
		}

		c := locslog.NewLoggingCompleter(inner, logger)
		_, err := c.Complete(context.Background(), referent.CompletionRequest{User: "article"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "code=rate_limited")
		assert.Contains(t, output, "status=429")
	})
}

func TestLoggingProcessor_Run(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Processor{
		RunFn: func(_ context.Context, kind referent.ActionKind, text string) (*referent.Completion, error) {
			return &referent.Completion{Text: "done", Model: "m", Usage: referent.Usage{TotalTokens: 42}}, nil
		},
	}

	p := locslog.NewLoggingProcessor(inner, logger)
	_, err := p.Run(context.Background(), referent.ActionThesis, "text")

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "action=thesis")
	assert.Contains(t, output, "total_tokens=42")
}
