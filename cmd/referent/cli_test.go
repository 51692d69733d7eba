package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/referent"
	main "github.com/fwojciec/referent/cmd/referent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"serve", "parse", "run", "image", "batch", "ui"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_RejectsUnknownAction(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli,
		kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run", "poem", "https://example.com"})

	require.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.EnvFiles = nil

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.EnvFiles = nil

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_MissingKeyIsReportedOnUse(t *testing.T) {
	t.Parallel()

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><article><h1>X</h1><p>Hello world. This is a test.</p></article></body></html>`))
	}))
	t.Cleanup(page.Close)

	m := main.NewMain()
	m.EnvFiles = nil
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{
		"run", "summary", page.URL,
		"--provider=openrouter",
		"--openrouter-key=",
		"--rate=0",
	}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, referent.EUNAUTHORIZED, referent.ErrorCode(err))
	assert.Contains(t, stderr.String(), "API authentication failed")
}
