package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/referent"
	refgin "github.com/fwojciec/referent/gin"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher      referent.Fetcher
	Converter    referent.Converter
	Parser       referent.ArticleParser
	Processor    referent.Processor
	Illustrator  referent.Illustrator
	Publisher    referent.Publisher
	Writer       referent.ResultWriter
	TokenCounter referent.TokenCounter
	Server       *refgin.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config

	Serve ServeCmd `cmd:"" help:"Serve the HTTP API"`
	Parse ParseCmd `cmd:"" help:"Extract the article at a URL"`
	Run   RunCmd   `cmd:"" help:"Run an action on the article at a URL"`
	Image ImageCmd `cmd:"" help:"Generate an illustration for the article at a URL"`
	Batch BatchCmd `cmd:"" help:"Run an action on every URL listed in a file and save the results"`
	UI    UICmd    `cmd:"" name:"ui" help:"Start the interactive terminal UI"`
}

// Config holds the global flags shared by all commands.
type Config struct {
	LogLevel string `name:"log-level" env:"REFERENT_LOG_LEVEL" enum:"debug,info,warn,error" default:"warn" help:"Log level (debug, info, warn, error)"`
	Dev      bool   `env:"REFERENT_DEV" help:"Include raw upstream error details in API responses"`

	Provider    string `env:"REFERENT_PROVIDER" enum:"openrouter,gemini" default:"openrouter" help:"Completion provider (openrouter, gemini)"`
	Model       string `env:"REFERENT_MODEL" help:"Completion model (defaults to the provider default)"`
	Language    string `env:"REFERENT_LANGUAGE" default:"Russian" help:"Output language"`
	ChunkSize   int    `name:"chunk-size" env:"REFERENT_CHUNK_SIZE" default:"80000" help:"Largest text, in characters, sent in one completion call"`
	Concurrency int    `env:"REFERENT_CONCURRENCY" default:"1" help:"Parallel completion calls for long articles"`
	Prompts     string `env:"REFERENT_PROMPTS" type:"path" help:"YAML file with per-action prompt overrides"`

	Extractor string        `env:"REFERENT_EXTRACTOR" enum:"selectors,readability,trafilatura" default:"selectors" help:"Article extractor (selectors, readability, trafilatura)"`
	Render    bool          `env:"REFERENT_RENDER" help:"Render pages in a headless browser before extracting"`
	Rate      float64       `env:"REFERENT_RATE" default:"1" help:"Page requests per second per domain (0 disables limiting)"`
	Timeout   time.Duration `env:"REFERENT_FETCH_TIMEOUT" default:"30s" help:"Page fetch timeout"`

	OpenRouterKey  string `name:"openrouter-key" env:"OPENROUTER_API_KEY" help:"OpenRouter API key"`
	GeminiKey      string `name:"gemini-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	HuggingFaceKey string `name:"huggingface-key" env:"HUGGINGFACE_API_KEY,HF_API_KEY" help:"Hugging Face API key"`
	AppURL         string `name:"app-url" env:"REFERENT_APP_URL,NEXT_PUBLIC_APP_URL" help:"Application URL sent as the OpenRouter referer"`

	TelegramToken string `name:"telegram-token" env:"TELEGRAM_BOT_TOKEN" help:"Telegram bot token"`
	TelegramChat  string `name:"telegram-chat" env:"TELEGRAM_CHAT_ID" help:"Telegram chat ID or @channel"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"REFERENT_ADDR" default:":3000" help:"Listen address"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	URL      string `arg:"" help:"Article URL"`
	Full     bool   `help:"Print the full article body"`
	Markdown bool   `help:"Print the article container converted to Markdown instead"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Action string `arg:"" enum:"summary,thesis,telegram,translate,image-prompt" help:"Action (summary, thesis, telegram, translate, image-prompt)"`
	URL    string `arg:"" help:"Article URL"`
	Out    string `short:"o" type:"path" help:"Directory to save the result to"`
}

// ImageCmd is the "image" subcommand.
type ImageCmd struct {
	URL string `arg:"" help:"Article URL"`
	Out string `short:"o" type:"path" default:"." help:"Directory to save the image to"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File   string `arg:"" type:"existingfile" help:"File with one article URL per line"`
	Action string `short:"a" enum:"summary,thesis,telegram,translate,image-prompt" default:"summary" help:"Action to run"`
	Out    string `short:"o" type:"path" default:"out" help:"Directory to save the results to"`
}

// UICmd is the "ui" subcommand.
type UICmd struct {
	Out string `short:"o" type:"path" default:"out" help:"Directory results are saved to"`
}
