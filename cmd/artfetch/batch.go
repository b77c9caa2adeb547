package main

import (
	"fmt"
	"os"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/pipeline"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	urls := ParseURLList(string(data))
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", c.File)
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Archiving %d URLs\n", event.Total)
		case pipeline.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %s\n",
				event.Completed, event.Total, event.URL, artfetch.ErrorMessage(event.Error))
		}
	}

	outcomes, err := deps.Pipeline.Batch(deps.Ctx, urls, progress)
	if err != nil {
		return err
	}

	result := pipeline.Summarize(outcomes)
	fmt.Fprintf(deps.Stdout, "Saved %d articles, %d failed", result.Saved, result.Failed)
	if result.ImagesDownloaded > 0 || result.ImagesFailed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d images downloaded, %d failed)",
			result.ImagesDownloaded, result.ImagesFailed)
	}
	fmt.Fprintln(deps.Stdout)
	return nil
}
