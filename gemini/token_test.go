package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ referent.TokenCounter = tc

	t.Run("counts tokens in article text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "The council approved the budget.")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("blank text returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), " \n\t")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		shortCount, err := tc.CountTokens(context.Background(), "Hello")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(context.Background(), strings.Repeat("A longer paragraph of article text. ", 20))
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}

func TestNewTokenCounter_RejectsUnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("not-a-model")

	require.Error(t, err)
	assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
}
