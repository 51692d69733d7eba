// Package telegram publishes generated posts through the Telegram Bot API.
package telegram

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/referent"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram message limits, in characters.
const (
	MaxMessageLength = 4096
	MaxCaptionLength = 1024
)

// Ensure Publisher implements referent.Publisher.
var _ referent.Publisher = (*Publisher)(nil)

// Publisher posts messages to a single chat.
type Publisher struct {
	api  *tgbotapi.BotAPI
	chat string
}

// Option configures a Publisher.
type Option func(*config)

type config struct {
	endpoint string
	client   *http.Client
}

// WithEndpoint sets the Bot API endpoint format string,
// e.g. "https://api.telegram.org/bot%s/%s".
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for Bot API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.client = client
	}
}

// NewPublisher authenticates the bot and returns a Publisher posting to
// chat, which is either a numeric chat ID or a "@channel" username.
func NewPublisher(token, chat string, opts ...Option) (*Publisher, error) {
	if strings.TrimSpace(token) == "" {
		return nil, referent.Errorf(referent.EUNAUTHORIZED, "telegram bot token is not configured")
	}
	if strings.TrimSpace(chat) == "" {
		return nil, referent.Errorf(referent.EINVALID, "telegram chat is not configured")
	}

	cfg := &config{
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	api, err := tgbotapi.NewBotAPIWithClient(token, cfg.endpoint, cfg.client)
	if err != nil {
		return nil, wrapError("authenticate bot", err)
	}
	return &Publisher{api: api, chat: chat}, nil
}

// Publish sends text, with image as a photo when given. Text that fits in
// a caption is sent with the photo; longer text follows it as a separate
// message. The returned ID is that of the message holding the text.
func (p *Publisher) Publish(ctx context.Context, text string, image *referent.Image) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", referent.Errorf(referent.EINVALID, "text required")
	}
	n := utf8.RuneCountInString(text)
	if n > MaxMessageLength {
		return "", referent.Errorf(referent.EINVALID, "text is %d characters, telegram allows at most %d", n, MaxMessageLength)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if image != nil {
		photo := p.photo(image)
		if n <= MaxCaptionLength {
			photo.Caption = text
			return p.send(photo)
		}
		if _, err := p.send(photo); err != nil {
			return "", err
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
	return p.send(p.message(text))
}

func (p *Publisher) send(c tgbotapi.Chattable) (string, error) {
	msg, err := p.api.Send(c)
	if err != nil {
		return "", wrapError("send message", err)
	}
	return strconv.Itoa(msg.MessageID), nil
}

func (p *Publisher) message(text string) tgbotapi.MessageConfig {
	if id, ok := p.chatID(); ok {
		return tgbotapi.NewMessage(id, text)
	}
	return tgbotapi.NewMessageToChannel(p.chat, text)
}

func (p *Publisher) photo(image *referent.Image) tgbotapi.PhotoConfig {
	file := tgbotapi.FileBytes{Name: "image" + extension(image.ContentType), Bytes: image.Data}
	if id, ok := p.chatID(); ok {
		return tgbotapi.NewPhoto(id, file)
	}
	return tgbotapi.NewPhotoToChannel(p.chat, file)
}

func (p *Publisher) chatID() (int64, bool) {
	id, err := strconv.ParseInt(p.chat, 10, 64)
	return id, err == nil
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// wrapError converts Bot API failures into application errors.
func wrapError(op string, err error) error {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return referent.UpstreamErrorf(apiErr.Code, apiErr.Message, "telegram: %s: %s", op, apiErr.Message)
	}
	return referent.Errorf(referent.ENETWORK, "telegram: %s: %v", op, err)
}
