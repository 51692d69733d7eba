package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("empty document has no overrides", func(t *testing.T) {
		t.Parallel()

		p, err := yaml.Parse(nil)

		require.NoError(t, err)
		assert.Empty(t, p.Actions)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.Parse([]byte("actions:\n  summary:\n    systemPromt: typo\n"))

		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	})
}

func TestPrompts_Apply(t *testing.T) {
	t.Parallel()

	t.Run("overrides only given fields", func(t *testing.T) {
		t.Parallel()

		base := referent.DefaultActions("English")
		p, err := yaml.Parse([]byte(`
actions:
  summary:
    systemPrompt: "Summarize briefly."
    temperature: 0.2
  translate:
    maxTokens: 8000
    mergeSeparator: "\n---\n"
`))
		require.NoError(t, err)

		got, err := p.Apply(base)

		require.NoError(t, err)
		assert.Equal(t, "Summarize briefly.", got[referent.ActionSummary].SystemPrompt)
		assert.InDelta(t, 0.2, got[referent.ActionSummary].Temperature, 1e-9)
		assert.Equal(t, base[referent.ActionSummary].MaxTokens, got[referent.ActionSummary].MaxTokens)
		assert.Equal(t, base[referent.ActionSummary].MergePrompt, got[referent.ActionSummary].MergePrompt)
		assert.Equal(t, 8000, got[referent.ActionTranslate].MaxTokens)
		assert.Equal(t, "\n---\n", got[referent.ActionTranslate].MergeSeparator)
		assert.Equal(t, base[referent.ActionThesis], got[referent.ActionThesis])
	})

	t.Run("base is not modified", func(t *testing.T) {
		t.Parallel()

		base := referent.DefaultActions("English")
		original := base[referent.ActionSummary].SystemPrompt
		p, err := yaml.Parse([]byte("actions:\n  summary:\n    systemPrompt: changed\n"))
		require.NoError(t, err)

		_, err = p.Apply(base)

		require.NoError(t, err)
		assert.Equal(t, original, base[referent.ActionSummary].SystemPrompt)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		t.Parallel()

		p, err := yaml.Parse([]byte("actions:\n  poem:\n    systemPrompt: rhyme\n"))
		require.NoError(t, err)

		_, err = p.Apply(referent.DefaultActions("English"))

		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		t.Parallel()

		p, err := yaml.Parse([]byte("actions:\n  thesis:\n    temperature: 3\n"))
		require.NoError(t, err)

		_, err = p.Apply(referent.DefaultActions("English"))

		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("actions:\n  telegram:\n    maxTokens: 500\n"), 0o600))

		p, err := yaml.Load(path)

		require.NoError(t, err)
		require.Contains(t, p.Actions, "telegram")
		require.NotNil(t, p.Actions["telegram"].MaxTokens)
		assert.Equal(t, 500, *p.Actions["telegram"].MaxTokens)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.Load(filepath.Join(t.TempDir(), "nope.yaml"))

		assert.Equal(t, referent.ENOTFOUND, referent.ErrorCode(err))
	})
}
