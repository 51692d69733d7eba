package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/referent"
)

// Ensure LoggingCompleter implements referent.Completer.
var _ referent.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer and logs every completion call.
type LoggingCompleter struct {
	next   referent.Completer
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next referent.Completer, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, logger: logger}
}

// Complete delegates to the wrapped completer and logs model, tokens and duration.
func (c *LoggingCompleter) Complete(ctx context.Context, req referent.CompletionRequest) (completion *referent.Completion, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"input_chars", utf8.RuneCountInString(req.User),
			"max_tokens", req.MaxTokens,
			"duration", time.Since(begin),
		}
		if completion != nil {
			attrs = append(attrs,
				"model", completion.Model,
				"prompt_tokens", completion.Usage.PromptTokens,
				"completion_tokens", completion.Usage.CompletionTokens,
			)
		}
		if err != nil {
			attrs = append(attrs, "code", referent.ErrorCode(err), "status", referent.ErrorStatus(err))
		}
		c.logger.Info("completion", append(attrs, "err", err)...)
	}(time.Now())
	return c.next.Complete(ctx, req)
}

// Ensure LoggingProcessor implements referent.Processor.
var _ referent.Processor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps a Processor and logs each action run.
type LoggingProcessor struct {
	next   referent.Processor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next referent.Processor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Run delegates to the wrapped processor and logs the action outcome.
func (p *LoggingProcessor) Run(ctx context.Context, kind referent.ActionKind, text string) (completion *referent.Completion, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"action", kind,
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
		}
		if completion != nil {
			attrs = append(attrs, "model", completion.Model, "total_tokens", completion.Usage.TotalTokens)
		}
		p.logger.Info("action", append(attrs, "err", err)...)
	}(time.Now())
	return p.next.Run(ctx, kind, text)
}
