package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch   FetchCmd   `cmd:"" help:"Archive a single article URL"`
	Batch   BatchCmd   `cmd:"" help:"Archive every URL listed in a file"`
	Sources SourcesCmd `cmd:"" help:"List supported source platforms"`

	Format      string `short:"f" default:"markdown" enum:"markdown,md,html,epub" help:"Output format (markdown, html, epub)"`
	Out         string `short:"o" default:"output" env:"ARTFETCH_OUT" help:"Output directory"`
	NoImages    bool   `help:"Keep remote image URLs instead of downloading"`
	Concurrency int    `short:"c" default:"3" help:"Concurrent article limit for batch"`
	Timeout     int    `default:"30" help:"HTTP timeout in seconds"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL string `arg:"" help:"Article URL"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File string `arg:"" type:"existingfile" help:"File with one URL per line (# starts a comment)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// format resolves the validated format flag.
func (c *CLI) format() artfetch.Format {
	f, err := artfetch.ParseFormat(c.Format)
	if err != nil {
		return artfetch.FormatMarkdown
	}
	return f
}
