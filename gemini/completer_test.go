package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newClient(t *testing.T, handler http.HandlerFunc) *genai.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL + "/"},
	})
	require.NoError(t, err)
	return client
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("returns text model and usage", func(t *testing.T) {
		t.Parallel()

		var body map[string]any
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &body)
			assert.True(t, strings.Contains(r.URL.Path, "gemini-test:generateContent"), r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"candidates": [{"content": {"role": "model", "parts": [{"text": "  A short summary.  "}]}}],
				"usageMetadata": {"promptTokenCount": 120, "candidatesTokenCount": 30, "totalTokenCount": 150},
				"modelVersion": "gemini-test-001"
			}`))
		})

		c := gemini.NewCompleter(client, "gemini-test")
		got, err := c.Complete(context.Background(), referent.CompletionRequest{
			System:      "Summarize.",
			User:        "Article text",
			Temperature: 0.7,
			MaxTokens:   2000,
		})

		require.NoError(t, err)
		assert.Equal(t, "A short summary.", got.Text)
		assert.Equal(t, "gemini-test-001", got.Model)
		assert.Equal(t, referent.Usage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150}, got.Usage)
		assert.Contains(t, body, "systemInstruction")
	})

	t.Run("empty candidate text is malformed", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates": []}`))
		})

		c := gemini.NewCompleter(client, "gemini-test")
		_, err := c.Complete(context.Background(), referent.CompletionRequest{User: "text"})

		require.Error(t, err)
		assert.Equal(t, referent.EMALFORMED, referent.ErrorCode(err))
	})

	t.Run("maps upstream status", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
		})

		c := gemini.NewCompleter(client, "gemini-test")
		_, err := c.Complete(context.Background(), referent.CompletionRequest{User: "text"})

		require.Error(t, err)
		assert.Equal(t, referent.ERATELIMIT, referent.ErrorCode(err))
		assert.Equal(t, http.StatusTooManyRequests, referent.ErrorStatus(err))
		assert.Contains(t, referent.ErrorDetails(err), "quota exceeded")
	})

	t.Run("rejects empty text without calling upstream", func(t *testing.T) {
		t.Parallel()

		c := gemini.NewCompleter(nil, "")
		_, err := c.Complete(context.Background(), referent.CompletionRequest{User: "  "})

		require.Error(t, err)
		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	})
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("sets system instruction and limits", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(referent.CompletionRequest{
			System:      "Translate.",
			Temperature: 0.3,
			MaxTokens:   4000,
		})

		require.NotNil(t, config.SystemInstruction)
		require.Len(t, config.SystemInstruction.Parts, 1)
		assert.Equal(t, "Translate.", config.SystemInstruction.Parts[0].Text)
		require.NotNil(t, config.Temperature)
		assert.InDelta(t, 0.3, *config.Temperature, 0.0001)
		assert.Equal(t, int32(4000), config.MaxOutputTokens)
	})

	t.Run("omits system instruction when empty", func(t *testing.T) {
		t.Parallel()

		config := gemini.BuildConfig(referent.CompletionRequest{})

		assert.Nil(t, config.SystemInstruction)
		assert.Zero(t, config.MaxOutputTokens)
	})
}
