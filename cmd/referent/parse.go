package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/goquery"
	"github.com/fwojciec/referent/pipeline"
)

// previewLength is how much of the body is printed without --full.
const previewLength = 500

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	if c.Markdown {
		return c.markdown(deps)
	}

	article, err := deps.Parser.Parse(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", referent.UserMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Title: %s\n", article.Title)
	if article.PublishedAt != nil {
		fmt.Fprintf(deps.Stdout, "Date: %s\n", *article.PublishedAt)
	}
	if !article.HasBody() {
		fmt.Fprintf(deps.Stdout, "\n%s\n", article.Body)
		return nil
	}

	stats := fmt.Sprintf("%d characters", utf8.RuneCountInString(article.Body))
	if deps.TokenCounter != nil {
		if n, err := deps.TokenCounter.CountTokens(deps.Ctx, article.Body); err == nil {
			stats += fmt.Sprintf(", ~%d tokens", n)
		}
	}
	fmt.Fprintf(deps.Stdout, "Length: %s\n\n", stats)

	body := article.Body
	if !c.Full {
		if r := []rune(body); len(r) > previewLength {
			body = string(r[:previewLength]) + "..."
		}
	}
	fmt.Fprintln(deps.Stdout, body)
	return nil
}

// markdown prints the article container of the page as Markdown, keeping
// links, lists and tables that the plain body drops.
func (c *ParseCmd) markdown(deps *Dependencies) (err error) {
	defer func() {
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", referent.UserMessage(err))
		}
	}()

	target, err := pipeline.ValidateURL(c.URL)
	if err != nil {
		return err
	}
	html, err := deps.Fetcher.Fetch(deps.Ctx, target)
	if err != nil {
		return err
	}
	content, err := goquery.ContentHTML(html)
	if err != nil {
		return err
	}
	md, err := deps.Converter.Convert(content)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}
