package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/referent"
)

// Complete builds the article for content found by another extraction
// library. title and contentHTML are the library's findings and may be
// empty. The content is used as plain text when it reaches MinBodyLength;
// otherwise the selector chains of e decide the body, as they do the date
// and a title the library did not find.
func (e *Extractor) Complete(rawHTML, title, contentHTML string) (*referent.Article, error) {
	article, err := e.Extract(rawHTML)
	if err != nil {
		return nil, err
	}

	chainTitle := article.Title
	if title = strings.TrimSpace(title); title != "" {
		article.Title = title
	}

	if strings.TrimSpace(contentHTML) == "" {
		return article, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return article, nil
	}
	doc.Find(junkSelector).Remove()

	text := plainText(doc.Selection, map[string]bool{article.Title: true, chainTitle: true})
	if utf8.RuneCountInString(text) >= MinBodyLength {
		article.Body = text
	}
	return article, nil
}

// plainText joins the block texts of sel with blank lines, leaving out
// blocks whose text is in skip. Content without block elements is returned
// with its whitespace collapsed.
func plainText(sel *goquery.Selection, skip map[string]bool) string {
	blocks := sel.Find(blockSelector)
	if blocks.Length() == 0 {
		return strings.Join(strings.Fields(sel.Text()), " ")
	}

	var parts []string
	blocks.Each(func(_ int, b *goquery.Selection) {
		// Nested blocks are visited on their own.
		if b.Find(blockSelector).Length() > 0 {
			return
		}
		text := strings.TrimSpace(b.Text())
		if text == "" || skip[text] {
			return
		}
		parts = append(parts, text)
	})
	return strings.Join(parts, "\n\n")
}

// ContentHTML returns the HTML of the first article container in rawHTML,
// without junk elements, falling back to the page body.
func ContentHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", referent.Errorf(referent.EINVALID, "failed to parse HTML: %v", err)
	}

	container := doc.Find("body").First()
	for _, selector := range BodySelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			container = sel
			break
		}
	}
	container.Find(junkSelector).Remove()
	if strings.TrimSpace(container.Text()) == "" {
		return "", referent.Errorf(referent.ENOTFOUND, "no article content found")
	}

	content, err := goquery.OuterHtml(container)
	if err != nil {
		return "", referent.Errorf(referent.EINTERNAL, "failed to render content: %v", err)
	}
	return content, nil
}
