// Package goquery implements article extraction with ordered CSS selector
// heuristics on top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/referent"
	"golang.org/x/net/html"
)

const (
	// MinBodyLength is the shortest container text accepted as the body.
	MinBodyLength = 100

	// MinParagraphLength is the shortest paragraph used by the fallback.
	MinParagraphLength = 50

	// MaxFallbackParagraphs caps the paragraphs used by the fallback.
	MaxFallbackParagraphs = 10
)

const (
	junkSelector  = "script, style, nav, aside, .advertisement, .ads, .sidebar"
	blockSelector = "p, h1, h2, h3, h4, h5, h6, li"
)

// Ensure Extractor implements referent.Extractor at compile time.
var _ referent.Extractor = (*Extractor)(nil)

// Extractor locates the title, date and body of an article using ordered
// selector chains. The first rule yielding a value wins.
type Extractor struct {
	TitleRules    []Rule
	DateRules     []Rule
	BodySelectors []string
}

// NewExtractor creates an Extractor with the default selector chains.
func NewExtractor() *Extractor {
	return &Extractor{
		TitleRules:    TitleRules,
		DateRules:     DateRules,
		BodySelectors: BodySelectors,
	}
}

// Extract parses raw HTML and returns the article.
// Malformed HTML is parsed tolerantly; missing fields get their not-found markers.
func (e *Extractor) Extract(rawHTML string) (*referent.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, referent.Errorf(referent.EINVALID, "failed to parse HTML: %v", err)
	}

	article := &referent.Article{
		Title: referent.TitleNotFound,
		Body:  referent.BodyNotFound,
	}

	var titleNode *html.Node
	if m := FirstMatch(doc.Selection, e.TitleRules); m.Found() {
		article.Title = m.Value
		titleNode = m.Sel.Get(0)
	}

	if m := FirstMatch(doc.Selection, e.DateRules); m.Found() {
		date := m.Value
		article.PublishedAt = &date
	}

	if body := e.body(doc, titleNode); body != "" {
		article.Body = body
	}

	return article, nil
}

// body tries each container selector, then long paragraphs anywhere in the
// page, then the first short container text. The node used as the title
// is not repeated in the body.
func (e *Extractor) body(doc *goquery.Document, titleNode *html.Node) string {
	var short string
	for _, selector := range e.BodySelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		container.Find(junkSelector).Remove()

		text := collectBlocks(container, titleNode)
		if utf8.RuneCountInString(text) >= MinBodyLength {
			return text
		}
		// The first short text is kept, not the last one seen.
		if short == "" {
			short = text
		}
	}

	if text := longParagraphs(doc); text != "" {
		return text
	}
	return short
}

// collectBlocks joins the trimmed text of paragraph, heading and list item
// descendants with blank lines.
func collectBlocks(container *goquery.Selection, skip *html.Node) string {
	var parts []string
	container.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if skip != nil && sel.Get(0) == skip {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

// longParagraphs joins up to MaxFallbackParagraphs paragraphs longer than
// MinParagraphLength.
func longParagraphs(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if utf8.RuneCountInString(text) > MinParagraphLength {
			parts = append(parts, text)
		}
		return len(parts) < MaxFallbackParagraphs
	})
	return strings.Join(parts, "\n\n")
}
