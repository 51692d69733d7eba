package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/bloom"
)

// batchFalsePositiveRate bounds how often a new URL needs an exact lookup.
const batchFalsePositiveRate = 0.001

// Run executes the batch command. Failures of single articles are
// reported and the run continues.
func (c *BatchCmd) Run(deps *Dependencies) error {
	kind, err := referent.ParseActionKind(c.Action)
	if err != nil {
		return err
	}

	urls, err := readURLs(c.File)
	if err != nil {
		return err
	}

	seen := bloom.NewSet(uint(len(urls)), batchFalsePositiveRate)
	var done, skipped, failed int
	for _, url := range urls {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		if seen.Seen(url) {
			skipped++
			fmt.Fprintf(deps.Stderr, "- %s: duplicate, skipped\n", url)
			continue
		}

		path, err := c.process(deps, kind, url)
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "✗ %s: %s\n", url, referent.UserMessage(err))
			continue
		}
		done++
		fmt.Fprintf(deps.Stdout, "✓ %s → %s\n", url, path)
	}

	fmt.Fprintf(deps.Stdout, "\n%d saved, %d duplicates skipped, %d failed\n", done, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d articles failed", failed, done+failed)
	}
	return nil
}

func (c *BatchCmd) process(deps *Dependencies, kind referent.ActionKind, url string) (string, error) {
	article, err := deps.Parser.Parse(deps.Ctx, url)
	if err != nil {
		return "", err
	}
	if !article.HasBody() {
		return "", referent.Errorf(referent.EINVALID, "no article text found")
	}

	completion, err := deps.Processor.Run(deps.Ctx, kind, article.Body)
	if err != nil {
		return "", err
	}

	return deps.Writer.Write(deps.Ctx, &referent.Result{
		Source:     url,
		Article:    article,
		Kind:       kind,
		Completion: completion,
	})
}

// readURLs returns the non-empty lines of path, skipping # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}
