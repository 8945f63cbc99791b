package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"
	"github.com/fwojciec/docdig"
	"github.com/fwojciec/docdig/crawl"
	"github.com/fwojciec/docdig/fs"
	"github.com/fwojciec/docdig/goquery"
	"github.com/fwojciec/docdig/htmltomarkdown"
	dochttp "github.com/fwojciec/docdig/http"
	docslog "github.com/fwojciec/docdig/slog"
	"github.com/fwojciec/docdig/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// DB is the manifest database, open while a run with --manifest is in
	// progress.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdig"),
		kong.Description("Harvest documentation sites into local markdown, JSON, text or HTML files"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Configuration errors are fatal before any network work.
	seeds, err := cli.Seeds()
	if err != nil {
		return err
	}
	opts, err := cli.Options()
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	deps, err := m.wire(cli, logger)
	if err != nil {
		return err
	}
	defer deps.Fetcher.Close()
	defer m.Close()

	cmd := &HarvestCmd{
		Seeds:       seeds,
		Options:     opts,
		SummaryPath: cli.SummaryPath,
	}
	return cmd.Run(ctx, deps, stdout, stderr)
}

// wire builds the harvester and its collaborators from the parsed flags.
func (m *Main) wire(cli *CLI, logger *slog.Logger) (*Dependencies, error) {
	client := dochttp.NewClient(cli.Timeout, cli.UserAgent)
	fetcher := docslog.NewLoggingFetcher(
		dochttp.NewFetcher(dochttp.WithTimeout(cli.Timeout), dochttp.WithUserAgent(cli.UserAgent)),
		logger,
	)

	crawler := &crawl.Crawler{
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Links:     goquery.NewLinkExtractor(),
		Robots:    dochttp.NewRobotsService(client, cli.UserAgent),
		Paths:     fs.NewPathResolver(),
		Writer:    docslog.NewLoggingWriter(fs.NewWriter(), logger),
		Limiter:   crawl.NewDomainLimiter(cli.Rate),
	}

	if cli.Manifest != "" {
		m.DB = sqlite.NewDB(cli.Manifest)
		if err := m.DB.Open(); err != nil {
			m.DB = nil
			return nil, fmt.Errorf("open manifest: %w", err)
		}
		crawler.Manifest = sqlite.NewManifestService(m.DB)
	}

	return &Dependencies{
		Fetcher: fetcher,
		Harvester: &crawl.Harvester{
			Crawler:  crawler,
			Sitemaps: docslog.NewLoggingSitemapService(dochttp.NewSitemapService(client), logger),
			Parallel: cli.Parallel,
		},
		Logger:   logger,
		Manifest: crawler.Manifest,
	}, nil
}

// newLogger returns a terminal logger writing to w. Debug records are shown
// only when verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Prefix:          "docdig",
		ReportTimestamp: true,
	})
	return slog.New(handler)
}

// Dependencies holds the services a harvest runs with.
type Dependencies struct {
	Fetcher   docdig.Fetcher
	Harvester *crawl.Harvester
	Logger    *slog.Logger

	// Manifest is nil unless --manifest is set.
	Manifest docdig.Manifest
}
