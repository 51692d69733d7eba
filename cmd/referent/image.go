package main

import (
	"fmt"

	"github.com/fwojciec/referent"
)

// Run executes the image command.
func (c *ImageCmd) Run(deps *Dependencies) error {
	article, err := parseWithBody(deps, c.URL)
	if err != nil {
		return err
	}

	prompt, err := deps.Processor.Run(deps.Ctx, referent.ActionImagePrompt, article.Body)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", referent.UserMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Prompt: %s\n", prompt.Text)

	img, err := deps.Illustrator.Illustrate(deps.Ctx, prompt.Text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", referent.UserMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Model: %s\n", img.Model)

	path, err := deps.Writer.Write(deps.Ctx, &referent.Result{
		Source:     c.URL,
		Article:    article,
		Kind:       referent.ActionImagePrompt,
		Completion: prompt,
		Image:      img,
	})
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	fmt.Fprintf(deps.Stderr, "Saved to %s\n", path)
	return nil
}
