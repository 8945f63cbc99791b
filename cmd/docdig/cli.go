package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/docdig"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Args     []string `arg:"" optional:"" name:"seeds" help:"Seed URLs to harvest."`
	URL      []string `short:"u" sep:"none" env:"DOCDIG_URL" help:"Seed URL (repeatable)."`
	URLsFile string   `name:"urls-file" type:"path" env:"DOCDIG_URLS_FILE" help:"File with one seed URL per line; blank lines and # comments are ignored."`

	Out      string  `short:"o" default:"sites" env:"DOCDIG_OUT" help:"Output root directory."`
	MaxPages int     `name:"max-pages" default:"10000" env:"DOCDIG_MAX_PAGES" help:"Maximum pages written per seed."`
	Depth    int     `default:"0" env:"DOCDIG_DEPTH" help:"Maximum link depth; 0 is unlimited."`
	Rate     float64 `default:"1.5" env:"DOCDIG_RATE" help:"Requests per second per host."`

	Include []string `sep:"none" env:"DOCDIG_INCLUDE" help:"Only crawl URLs matching this regular expression (repeatable)."`
	Exclude []string `sep:"none" env:"DOCDIG_EXCLUDE" help:"Skip URLs matching this regular expression (repeatable)."`

	SitemapOnly bool   `name:"sitemap-only" env:"DOCDIG_SITEMAP_ONLY" help:"Harvest the sitemap first; crawl only when it yields nothing. Ignored when filters are set."`
	SaveHTML    bool   `name:"save-html" env:"DOCDIG_SAVE_HTML" help:"Accepted for compatibility; currently has no effect."`
	Lang        string `env:"DOCDIG_LANG" help:"Language hint; currently has no effect."`
	Format      string `short:"f" default:"md" env:"DOCDIG_FORMAT" help:"Output format (md, json, txt, html)."`
	Diff        bool   `env:"DOCDIG_DIFF" help:"Leave files whose content has not changed untouched."`

	Timeout   time.Duration `short:"t" default:"20s" env:"DOCDIG_TIMEOUT" help:"Fetch timeout per request."`
	UserAgent string        `name:"user-agent" default:"docdig/0.1" env:"DOCDIG_USER_AGENT" help:"User agent for fetching and robots matching."`
	Parallel  int           `short:"p" default:"1" env:"DOCDIG_PARALLEL" help:"Seeds harvested concurrently."`

	Manifest    string `type:"path" env:"DOCDIG_MANIFEST" help:"SQLite database recording every written page."`
	SummaryPath string `name:"summary-path" type:"path" env:"DOCDIG_SUMMARY_PATH" help:"Write a YAML run summary to this file."`
	Verbose     bool   `short:"v" env:"DOCDIG_VERBOSE" help:"Enable debug logging."`
}

// Seeds returns the seed URLs from arguments, flags and the URL file, in
// that order.
func (c *CLI) Seeds() ([]string, error) {
	seeds := append(append([]string(nil), c.Args...), c.URL...)

	if c.URLsFile != "" {
		fromFile, err := readURLsFile(c.URLsFile)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, fromFile...)
	}

	if len(seeds) == 0 {
		return nil, docdig.Errorf(docdig.EINVALID, "at least one seed URL required")
	}
	return seeds, nil
}

// Options converts the flags into harvest options.
func (c *CLI) Options() (docdig.Options, error) {
	format, err := docdig.ParseFormat(c.Format)
	if err != nil {
		return docdig.Options{}, err
	}

	filter, err := compileFilter(c.Include, c.Exclude)
	if err != nil {
		return docdig.Options{}, err
	}

	opts := docdig.Options{
		OutputRoot:        c.Out,
		MaxPages:          c.MaxPages,
		MaxDepth:          c.Depth,
		RequestsPerSecond: c.Rate,
		Filter:            filter,
		SitemapFirst:      c.SitemapOnly,
		SaveHTML:          c.SaveHTML,
		Language:          c.Lang,
		Format:            format,
		Diff:              c.Diff,
	}
	if err := opts.Validate(); err != nil {
		return docdig.Options{}, err
	}
	return opts, nil
}

// readURLsFile reads one URL per line, skipping blank lines and comments.
func readURLsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, docdig.Errorf(docdig.EINVALID, "cannot read URL file: %v", err)
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
		return nil, docdig.Errorf(docdig.EINVALID, "cannot read URL file: %v", err)
	}
	return urls, nil
}

// compileFilter compiles include and exclude patterns. It returns nil when
// no pattern is given.
func compileFilter(include, exclude []string) (*docdig.URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}

	filter := &docdig.URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, docdig.Errorf(docdig.EINVALID, "invalid include pattern %q: %v", p, err)
		}
		filter.Include = append(filter.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, docdig.Errorf(docdig.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		filter.Exclude = append(filter.Exclude, re)
	}
	return filter, nil
}

// describeFilter summarizes a filter for log output.
func describeFilter(f *docdig.URLFilter) string {
	if f.Empty() {
		return "none"
	}
	return fmt.Sprintf("%d include, %d exclude", len(f.Include), len(f.Exclude))
}
