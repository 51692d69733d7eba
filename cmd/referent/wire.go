package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/fs"
	"github.com/fwojciec/referent/gemini"
	refgin "github.com/fwojciec/referent/gin"
	"github.com/fwojciec/referent/goquery"
	"github.com/fwojciec/referent/htmltomarkdown"
	lochttp "github.com/fwojciec/referent/http"
	"github.com/fwojciec/referent/huggingface"
	"github.com/fwojciec/referent/openai"
	"github.com/fwojciec/referent/pipeline"
	"github.com/fwojciec/referent/readability"
	"github.com/fwojciec/referent/rod"
	refslog "github.com/fwojciec/referent/slog"
	"github.com/fwojciec/referent/telegram"
	"github.com/fwojciec/referent/trafilatura"
	"github.com/fwojciec/referent/yaml"
	"google.golang.org/genai"
)

// wire builds the services needed by command into deps. The returned
// function releases them.
func wire(ctx context.Context, cli *CLI, command string, deps *Dependencies) (func(), error) {
	cfg := &cli.Config
	deps.Logger = cfg.logger(deps.Stderr)

	fetcher, err := cfg.fetcher()
	if err != nil {
		if cfg.Render {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed to use --render")
		}
		return nil, err
	}
	cleanup := func() { _ = fetcher.Close() }

	logged := refslog.NewLoggingFetcher(fetcher, deps.Logger)
	parser := pipeline.NewParser(logged, refslog.NewLoggingExtractor(cfg.extractor(), deps.Logger))
	parser.Timeout = cfg.Timeout
	deps.Parser = parser

	if strings.HasPrefix(command, "parse") {
		deps.Fetcher = logged
		deps.Converter = htmltomarkdown.NewConverter()
		tc, err := gemini.NewTokenCounter(gemini.TokenizerModel)
		if err != nil {
			deps.Logger.Warn("token counting disabled", "err", err)
		} else {
			deps.TokenCounter = tc
		}
		return cleanup, nil
	}

	actions, err := cfg.actions()
	if err != nil {
		cleanup()
		return nil, err
	}
	dispatcher := pipeline.NewDispatcher(refslog.NewLoggingCompleter(cfg.completer(ctx), deps.Logger), actions)
	dispatcher.ChunkSize = cfg.ChunkSize
	dispatcher.Concurrency = cfg.Concurrency
	deps.Processor = refslog.NewLoggingProcessor(dispatcher, deps.Logger)

	illustrator := pipeline.NewIllustrator(refslog.NewLoggingImageClient(cfg.imageClient(), deps.Logger))
	illustrator.Logger = logFunc(deps.Logger)
	deps.Illustrator = illustrator

	if cfg.TelegramToken != "" {
		p, err := telegram.NewPublisher(cfg.TelegramToken, cfg.TelegramChat)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
		}
		deps.Publisher = refslog.NewLoggingPublisher(p, deps.Logger)
	}

	switch {
	case strings.HasPrefix(command, "run"):
		if cli.Run.Out != "" {
			deps.Writer = fs.NewWriter(cli.Run.Out)
		}
	case strings.HasPrefix(command, "image"):
		deps.Writer = fs.NewWriter(cli.Image.Out)
	case strings.HasPrefix(command, "batch"):
		deps.Writer = fs.NewWriter(cli.Batch.Out)
	case strings.HasPrefix(command, "ui"):
		deps.Writer = fs.NewWriter(cli.UI.Out)
	case strings.HasPrefix(command, "serve"):
		deps.Server = &refgin.Server{
			Parser:      deps.Parser,
			Processor:   deps.Processor,
			Illustrator: deps.Illustrator,
			Publisher:   deps.Publisher,
			Logger:      deps.Logger,
			Dev:         cfg.Dev,
		}
	}
	return cleanup, nil
}

func (c *Config) logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logFunc adapts a slog.Logger to pipeline.LogFunc.
func logFunc(logger *slog.Logger) pipeline.LogFunc {
	return func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...))
	}
}

func (c *Config) fetcher() (referent.Fetcher, error) {
	if c.Render {
		return rod.NewFetcher(rod.WithFetchTimeout(c.Timeout))
	}
	return lochttp.NewFetcher(
		lochttp.WithTimeout(c.Timeout),
		lochttp.WithLimiter(lochttp.NewDomainLimiter(c.Rate)),
	), nil
}

func (c *Config) extractor() referent.Extractor {
	switch c.Extractor {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

func (c *Config) actions() (referent.Actions, error) {
	actions := referent.DefaultActions(c.Language)
	if c.Prompts == "" {
		return actions, nil
	}
	prompts, err := yaml.Load(c.Prompts)
	if err != nil {
		return nil, err
	}
	return prompts.Apply(actions)
}

// completer returns the configured completion service. A missing key is
// reported when the service is first used, so that commands and routes
// not needing it keep working.
func (c *Config) completer(ctx context.Context) referent.Completer {
	switch c.Provider {
	case "gemini":
		if c.GeminiKey == "" {
			return unconfigured{referent.Errorf(referent.EUNAUTHORIZED, "GEMINI_API_KEY is not set. Get a key at https://aistudio.google.com/apikey")}
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  c.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return unconfigured{referent.Errorf(referent.EUNAVAILABLE, "failed to connect to Gemini API: %v", err)}
		}
		return gemini.NewCompleter(client, c.Model)
	default:
		comp, err := openai.NewCompleter(openai.Config{
			APIKey: c.OpenRouterKey,
			Model:  c.Model,
			AppURL: c.AppURL,
		})
		if err != nil {
			return unconfigured{err}
		}
		return comp
	}
}

func (c *Config) imageClient() referent.ImageClient {
	client, err := huggingface.NewClient(c.HuggingFaceKey)
	if err != nil {
		return unconfigured{err}
	}
	return client
}

// unconfigured stands in for a service that could not be set up and
// returns the setup error on every call.
type unconfigured struct {
	err error
}

func (u unconfigured) Complete(context.Context, referent.CompletionRequest) (*referent.Completion, error) {
	return nil, u.err
}

func (u unconfigured) Generate(context.Context, string, string) (*referent.Image, error) {
	return nil, u.err
}
