package main

import (
	"fmt"

	"github.com/fwojciec/referent"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	kind, err := referent.ParseActionKind(c.Action)
	if err != nil {
		return err
	}

	article, err := parseWithBody(deps, c.URL)
	if err != nil {
		return err
	}

	completion, err := deps.Processor.Run(deps.Ctx, kind, article.Body)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", referent.UserMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, completion.Text)

	if deps.Writer == nil {
		return nil
	}
	path, err := deps.Writer.Write(deps.Ctx, &referent.Result{
		Source:     c.URL,
		Article:    article,
		Kind:       kind,
		Completion: completion,
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	fmt.Fprintf(deps.Stderr, "Saved to %s\n", path)
	return nil
}

// parseWithBody parses the article at url and rejects pages without
// article text.
func parseWithBody(deps *Dependencies, url string) (*referent.Article, error) {
	article, err := deps.Parser.Parse(deps.Ctx, url)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", referent.UserMessage(err))
		return nil, err
	}
	if !article.HasBody() {
		err := referent.Errorf(referent.EINVALID, "no article text found at %s", url)
		fmt.Fprintf(deps.Stderr, "error: %s\n", referent.ErrorMessage(err))
		return nil, err
	}
	return article, nil
}
