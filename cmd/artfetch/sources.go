package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/artfetch/artfetch"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	patterns := artfetch.SourcePatterns()

	sources := make([]string, 0, len(patterns))
	for source := range patterns {
		sources = append(sources, string(source))
	}
	sort.Strings(sources)

	for _, source := range sources {
		fmt.Fprintf(deps.Stdout, "%-10s %s\n", source, strings.Join(patterns[artfetch.Source(source)], ", "))
	}
	fmt.Fprintf(deps.Stdout, "%-10s %s\n", artfetch.SourceGeneric, "(any other URL)")
	return nil
}
