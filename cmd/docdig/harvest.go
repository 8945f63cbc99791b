package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/docdig"
	"github.com/fwojciec/docdig/crawl"
	"github.com/fwojciec/docdig/fs"
)

// HarvestCmd harvests every seed and reports progress.
type HarvestCmd struct {
	Seeds       []string
	Options     docdig.Options
	SummaryPath string
}

// Run executes the harvest. Progress goes to stdout, failures to stderr.
func (c *HarvestCmd) Run(ctx context.Context, deps *Dependencies, stdout, stderr io.Writer) error {
	deps.Logger.Debug("harvest",
		"seeds", len(c.Seeds),
		"out", c.Options.OutputRoot,
		"format", string(c.Options.Format),
		"filter", describeFilter(c.Options.Filter),
	)

	report, err := deps.Harvester.Harvest(ctx, c.Seeds, c.Options, func(e docdig.Event) {
		printEvent(stdout, stderr, e)
	})
	if report == nil {
		fmt.Fprintf(stderr, "error: %s\n", docdig.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(stdout, "Wrote %d pages to %s", report.Written, c.Options.OutputRoot)
	if report.Unchanged > 0 {
		fmt.Fprintf(stdout, " (%d unchanged)", report.Unchanged)
	}
	if report.Failed > 0 {
		fmt.Fprintf(stdout, ", %d failed", report.Failed)
	}
	fmt.Fprintln(stdout)

	c.logResults(ctx, deps, report)

	if c.SummaryPath != "" {
		summary := fs.Summary{Count: report.Written, Out: c.Options.OutputRoot}
		if serr := fs.WriteSummary(c.SummaryPath, summary); serr != nil {
			return errors.Join(err, fmt.Errorf("write summary: %w", serr))
		}
	}

	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, "interrupted")
	}
	return err
}

// logResults logs per-seed counts and, with a manifest, the number of pages
// it holds for each seed. Nothing is queried unless debug logging is on.
func (c *HarvestCmd) logResults(ctx context.Context, deps *Dependencies, report *crawl.Report) {
	if !deps.Logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	for _, r := range report.Results {
		deps.Logger.Debug("seed",
			"seed", r.Seed,
			"visited", r.Visited,
			"written", r.Written,
			"skipped", r.Skipped,
			"failed", r.Failed,
		)
		if deps.Manifest == nil {
			continue
		}
		pages, err := deps.Manifest.FindPages(context.WithoutCancel(ctx), r.Seed)
		if err != nil {
			deps.Logger.Warn("manifest", "seed", r.Seed, "error", err)
			continue
		}
		deps.Logger.Debug("manifest", "seed", r.Seed, "pages", len(pages))
	}
}

// printEvent renders one progress event.
func printEvent(stdout, stderr io.Writer, e docdig.Event) {
	switch e.Type {
	case docdig.EventTryingSitemap:
		fmt.Fprintf(stdout, "[%s] trying sitemap ...\n", e.Host)
	case docdig.EventSitemapFound:
		fmt.Fprintf(stdout, "[%s] sitemap lists %d pages\n", e.Host, e.Total)
	case docdig.EventSitemapEmpty:
		fmt.Fprintf(stdout, "[%s] sitemap empty\n", e.Host)
	case docdig.EventFallbackCrawl:
		fmt.Fprintf(stdout, "[%s] crawling %s\n", e.Host, e.Seed)
	case docdig.EventPageWritten:
		suffix := ""
		if e.Unchanged {
			suffix = " (unchanged)"
		}
		fmt.Fprintf(stdout, "[%d] %s%s\n", e.Seq, e.Path, suffix)
	case docdig.EventPageFailed:
		if e.Path != "" {
			fmt.Fprintf(stderr, "skip %s (%s): %v\n", e.URL, e.Path, e.Err)
		} else {
			fmt.Fprintf(stderr, "skip %s: %s\n", e.URL, docdig.ErrorMessage(e.Err))
		}
	case docdig.EventSeedFinished:
		fmt.Fprintf(stdout, "[%s] done: %d pages\n", e.Host, e.Seq)
	}
}
