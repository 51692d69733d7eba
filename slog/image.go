package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/referent"
)

// Ensure LoggingImageClient implements referent.ImageClient.
var _ referent.ImageClient = (*LoggingImageClient)(nil)

// LoggingImageClient wraps an ImageClient and logs every model attempt.
type LoggingImageClient struct {
	next   referent.ImageClient
	logger *slog.Logger
}

// NewLoggingImageClient creates a new LoggingImageClient.
func NewLoggingImageClient(next referent.ImageClient, logger *slog.Logger) *LoggingImageClient {
	return &LoggingImageClient{next: next, logger: logger}
}

// Generate delegates to the wrapped client and logs the attempt.
func (c *LoggingImageClient) Generate(ctx context.Context, model, prompt string) (img *referent.Image, err error) {
	defer func(begin time.Time) {
		attrs := []any{"model", model, "duration", time.Since(begin)}
		if img != nil {
			attrs = append(attrs, "bytes", len(img.Data), "content_type", img.ContentType)
		}
		if err != nil {
			attrs = append(attrs, "status", referent.ErrorStatus(err))
		}
		c.logger.Info("image generation", append(attrs, "err", err)...)
	}(time.Now())
	return c.next.Generate(ctx, model, prompt)
}

// Ensure LoggingPublisher implements referent.Publisher.
var _ referent.Publisher = (*LoggingPublisher)(nil)

// LoggingPublisher wraps a Publisher with logging.
type LoggingPublisher struct {
	next   referent.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next referent.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// Publish delegates to the wrapped publisher and logs the message ID.
func (p *LoggingPublisher) Publish(ctx context.Context, text string, image *referent.Image) (id string, err error) {
	defer func(begin time.Time) {
		p.logger.Info("publish",
			"chars", len([]rune(text)),
			"image", image != nil,
			"message_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Publish(ctx, text, image)
}
