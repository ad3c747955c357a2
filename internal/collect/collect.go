package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bbwaa-awards/internal/award"
	"github.com/pfrederiksen/bbwaa-awards/internal/config"
	"github.com/pfrederiksen/bbwaa-awards/internal/logger"
	"github.com/pfrederiksen/bbwaa-awards/internal/scraper"
	"github.com/pfrederiksen/bbwaa-awards/internal/storage"
	"github.com/pfrederiksen/bbwaa-awards/internal/table"
)

// tables lists the tables written per job, in write order
var tables = []award.Table{award.Summary, award.Detail}

// Collector scrapes award pages and writes their tables
type Collector struct {
	fetcher scraper.Fetcher
	cfg     *config.Config
	log     *logger.Logger
}

// New creates a Collector. A nil cfg uses config.Default().
func New(fetcher scraper.Fetcher, cfg *config.Config, log *logger.Logger) *Collector {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Collector{fetcher: fetcher, cfg: cfg, log: log}
}

// ScrapeCyYoung writes the Cy Young summary and ballot CSVs for one season and league
func (c *Collector) ScrapeCyYoung(ctx context.Context, year int, league, dir string) ([]string, error) {
	return c.scrapeArgs(ctx, year, league, award.CyYoung, dir)
}

// ScrapeMVP writes the MVP summary and ballot CSVs for one season and league
func (c *Collector) ScrapeMVP(ctx context.Context, year int, league, dir string) ([]string, error) {
	return c.scrapeArgs(ctx, year, league, award.MVP, dir)
}

// scrapeArgs validates user-supplied arguments before anything touches disk or network
func (c *Collector) scrapeArgs(ctx context.Context, year int, league string, kind award.Kind, dir string) ([]string, error) {
	l, err := award.ParseLeague(league)
	if err != nil {
		return nil, err
	}
	if err := award.ValidateYear(year); err != nil {
		return nil, err
	}
	return c.Scrape(ctx, award.Job{Year: year, League: l, Kind: kind}, dir)
}

// Scrape runs one job and returns the paths it wrote. Both tables are fetched and
// extracted before the output directory is created, so a failed job leaves no files.
func (c *Collector) Scrape(ctx context.Context, job award.Job, dir string) ([]string, error) {
	if dir == "" {
		dir = c.cfg.OutputDir
	}

	locators := c.cfg.Locators(job.Kind)
	docs := make(map[string]*goquery.Document)
	extracted := make(map[award.Table]*table.RecordSet, len(tables))

	for _, t := range tables {
		url := job.PageURL(c.cfg.BaseURL, t)

		// Cy Young tables share a page; fetch it once
		doc, ok := docs[url]
		if !ok {
			var err error
			doc, err = c.fetcher.Fetch(ctx, url)
			if err != nil {
				return nil, err
			}
			docs[url] = doc
		}

		sel, err := table.Select(doc, locators[t])
		if err != nil {
			return nil, fmt.Errorf("%s %s table at %s: %w", job, t, url, err)
		}
		rs, err := table.Extract(sel)
		if err != nil {
			return nil, fmt.Errorf("%s %s table at %s: %w", job, t, url, err)
		}
		logger.IncrCounter("tables.extracted")
		c.log.Debug("Extracted table", logger.Fields{
			"job":     job.String(),
			"table":   string(t),
			"columns": len(rs.Columns),
			"rows":    rs.Len(),
		})
		extracted[t] = rs
	}

	outDir, err := storage.EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(tables))
	for _, t := range tables {
		path := job.FilePath(outDir, t)
		if err := storage.WriteCSV(path, extracted[t]); err != nil {
			return written, err
		}
		logger.IncrCounter("files.written")
		written = append(written, path)
	}

	c.log.Info("Wrote award tables", logger.Fields{"job": job.String(), "files": written})
	return written, nil
}

// Result is the outcome of one batch job
type Result struct {
	Job      award.Job
	Files    []string
	Err      error
	Duration time.Duration
}

// OK reports whether the job wrote its files
func (r Result) OK() bool {
	return r.Err == nil
}
