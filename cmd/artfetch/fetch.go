package main

import (
	"fmt"

	"github.com/artfetch/artfetch"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	outcome, err := deps.Pipeline.Process(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", artfetch.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %q (%s)\n", outcome.Title, outcome.Source)
	for _, path := range outcome.Paths {
		fmt.Fprintf(deps.Stdout, "  %s\n", path)
	}
	if outcome.Stats.Downloaded > 0 || outcome.Stats.Failed > 0 {
		fmt.Fprintf(deps.Stdout, "  %d images downloaded, %d failed\n",
			outcome.Stats.Downloaded, outcome.Stats.Failed)
	}
	return nil
}
