package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule locates a candidate value in a document.
// Only the first element matching Selector is considered.
type Rule struct {
	Selector string

	// Attrs are read in order from the element; the first non-empty
	// value wins.
	Attrs []string

	// Text falls back to the element's trimmed text when no attribute
	// yields a value.
	Text bool
}

// Match is the value found by a Rule and the element it came from.
type Match struct {
	Value string
	Sel   *goquery.Selection
}

// Found reports whether the match holds a value.
func (m Match) Found() bool {
	return m.Value != ""
}

// Match applies the rule to root.
func (r Rule) Match(root *goquery.Selection) Match {
	sel := root.Find(r.Selector).First()
	if sel.Length() == 0 {
		return Match{}
	}
	for _, attr := range r.Attrs {
		if v, ok := sel.Attr(attr); ok {
			if v = strings.TrimSpace(v); v != "" {
				return Match{Value: v, Sel: sel}
			}
		}
	}
	if r.Text {
		if v := strings.TrimSpace(sel.Text()); v != "" {
			return Match{Value: v, Sel: sel}
		}
	}
	return Match{}
}

// FirstMatch applies rules in order and returns the first match with a
// value. The order of rules encodes their precedence.
func FirstMatch(root *goquery.Selection, rules []Rule) Match {
	for _, r := range rules {
		if m := r.Match(root); m.Found() {
			return m
		}
	}
	return Match{}
}

// TitleRules locate the article headline, semantic markup first.
var TitleRules = []Rule{
	{Selector: "h1", Text: true},
	{Selector: "article h1", Text: true},
	{Selector: ".post-title", Text: true},
	{Selector: ".article-title", Text: true},
	{Selector: `[itemprop="headline"]`, Attrs: []string{"content"}, Text: true},
	{Selector: `meta[property="og:title"]`, Attrs: []string{"content"}},
	{Selector: "title", Text: true},
}

// DateRules locate the publish date. Values are returned verbatim.
var DateRules = []Rule{
	{Selector: "time[datetime]", Attrs: []string{"datetime"}, Text: true},
	{Selector: "time", Attrs: []string{"datetime"}, Text: true},
	{Selector: `[itemprop="datePublished"]`, Attrs: []string{"datetime", "content"}, Text: true},
	{Selector: ".date", Attrs: []string{"datetime"}, Text: true},
	{Selector: ".published", Attrs: []string{"datetime"}, Text: true},
	{Selector: ".post-date", Attrs: []string{"datetime"}, Text: true},
	{Selector: ".article-date", Attrs: []string{"datetime"}, Text: true},
	{Selector: `meta[property="article:published_time"]`, Attrs: []string{"content"}},
	{Selector: `meta[name="publish-date"]`, Attrs: []string{"content"}},
}

// BodySelectors locate the container holding the article body.
var BodySelectors = []string{
	"article",
	".post",
	".content",
	".article-content",
	".post-content",
	`[itemprop="articleBody"]`,
	"main article",
	".entry-content",
}
