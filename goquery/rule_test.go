package goquery_test

import (
	"strings"
	"testing"

	pq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/referent/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *pq.Document {
	t.Helper()
	doc, err := pq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFirstMatch(t *testing.T) {
	t.Parallel()

	t.Run("returns first rule with a value", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<div class="a"></div><div class="b">B</div><div class="c">C</div>`)
		rules := []goquery.Rule{
			{Selector: ".a", Text: true},
			{Selector: ".b", Text: true},
			{Selector: ".c", Text: true},
		}

		m := goquery.FirstMatch(doc.Selection, rules)

		assert.True(t, m.Found())
		assert.Equal(t, "B", m.Value)
	})

	t.Run("prefers attributes in order", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<span class="d" content="C" datetime="D">text</span>`)
		rules := []goquery.Rule{{Selector: ".d", Attrs: []string{"datetime", "content"}, Text: true}}

		m := goquery.FirstMatch(doc.Selection, rules)

		assert.Equal(t, "D", m.Value)
	})

	t.Run("only considers the first matching element", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<h1> </h1><h1>Second</h1>`)
		rules := []goquery.Rule{{Selector: "h1", Text: true}}

		m := goquery.FirstMatch(doc.Selection, rules)

		assert.False(t, m.Found())
	})

	t.Run("ignores text for attribute-only rules", func(t *testing.T) {
		t.Parallel()

		doc := parse(t, `<meta property="og:title">`)
		rules := []goquery.Rule{{Selector: `meta[property="og:title"]`, Attrs: []string{"content"}}}

		m := goquery.FirstMatch(doc.Selection, rules)

		assert.False(t, m.Found())
	})
}
