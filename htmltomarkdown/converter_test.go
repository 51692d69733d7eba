package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements referent.Converter at compile time.
var _ referent.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("separates paragraphs with one blank line", func(t *testing.T) {
		t.Parallel()

		html := `<p>First paragraph.</p>


<p>Second paragraph.</p><div><br><br></div><p>Third paragraph.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "First paragraph.\n\nSecond paragraph.\n\nThird paragraph.", text)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert("\n\n<p>Hello, world!</p>\n\n")

		require.NoError(t, err)
		assert.Equal(t, "Hello, world!", text)
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Background</h2><p>Some context.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "## Background")
		assert.Contains(t, text, "Some context.")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Read the <a href="https://example.com/report">full report</a>.</p>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "[full report](https://example.com/report)")
	})

	t.Run("resolves relative links against domain", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="/archive/1">the archive</a>.</p>`

		conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://news.example.com"))
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "https://news.example.com/archive/1")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>First</li><li>Second</li></ul>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "- First")
		assert.Contains(t, text, "- Second")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>We will rebuild.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "> We will rebuild.")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Year</th><th>Level</th></tr><tr><td>2020</td><td>3.1</td></tr></table>`

		conv := htmltomarkdown.NewConverter()
		text, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Year")
		assert.Contains(t, text, "3.1")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, referent.EINVALID, referent.ErrorCode(err))
	})
}
