package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/epub"
	"github.com/artfetch/artfetch/fs"
	"github.com/artfetch/artfetch/goquery"
	"github.com/artfetch/artfetch/html"
	arthttp "github.com/artfetch/artfetch/http"
	"github.com/artfetch/artfetch/images"
	"github.com/artfetch/artfetch/markdown"
	"github.com/artfetch/artfetch/pipeline"
	"github.com/artfetch/artfetch/readability"
	artslog "github.com/artfetch/artfetch/slog"
	"github.com/artfetch/artfetch/trafilatura"
)

// imageRPS is the per-host download limit for article images.
const imageRPS = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher kept for graceful shutdown.
	Fetcher artfetch.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("artfetch"),
		kong.Description("Archive web articles as Markdown, HTML or EPUB."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'artfetch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	// Flags are global and may precede the subcommand, so the selected
	// command is only known after parsing.
	command := kongCtx.Command()
	if i := strings.IndexByte(command, ' '); i >= 0 {
		command = command[:i]
	}

	if command == "fetch" || command == "batch" {
		format := cli.format()

		fetcher := arthttp.NewFetcher(
			arthttp.WithTimeout(time.Duration(cli.Timeout) * time.Second),
		)
		m.Fetcher = fetcher
		defer m.Close()

		registry := newRegistry()
		imageDir := filepath.Join(cli.Out, images.LocalDirName)
		resolver := images.NewResolver(
			artslog.NewLoggingImageFetcher(fetcher, deps.Logger),
			imageDir,
			images.WithLimiter(images.NewDomainLimiter(imageRPS)),
		)

		// An EPUB without its images is broken, so --no-images only applies
		// to the other formats.
		skipImages := cli.NoImages && format != artfetch.FormatEPUB

		deps.Pipeline = &pipeline.Pipeline{
			Fetcher:     artslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractors:  artslog.NewLoggingRegistry(registry, deps.Logger),
			Images:      resolver,
			Renderers:   []artfetch.Renderer{newRenderer(format, imageDir)},
			Writer:      fs.NewWriter(cli.Out),
			SkipImages:  skipImages,
			Concurrency: cli.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// newRegistry wires every platform extractor plus the generic fallback
// cascade.
func newRegistry() *goquery.Registry {
	generic := goquery.NewGenericExtractor(
		readability.NewExtractor(),
		trafilatura.NewExtractor(),
	)
	registry := goquery.NewRegistry(generic)
	registry.Register(artfetch.SourceWeChat, goquery.NewWeChatExtractor())
	registry.Register(artfetch.SourceNotion, goquery.NewNotionExtractor())
	registry.Register(artfetch.SourceZhihu, goquery.NewZhihuExtractor())
	registry.Register(artfetch.SourceMedium, goquery.NewMediumExtractor())
	return registry
}

func newRenderer(format artfetch.Format, imageDir string) artfetch.Renderer {
	switch format {
	case artfetch.FormatHTML:
		return html.NewRenderer()
	case artfetch.FormatEPUB:
		return epub.NewRenderer(imageDir)
	default:
		return markdown.NewRenderer()
	}
}

// newLogger returns a debug logger in verbose mode, otherwise one that
// discards everything.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
