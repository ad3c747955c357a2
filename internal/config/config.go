// Package config loads run settings for the award scrapers from YAML.
//
// Every field has a default matching the historical batch (seasons 2012-2018,
// both leagues, both awards, written to ./data/), so a config file only needs
// the values it changes. Command-line flags are applied on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/bbwaa-awards/internal/award"
	"github.com/pfrederiksen/bbwaa-awards/internal/scraper"
	"github.com/pfrederiksen/bbwaa-awards/internal/storage"
	"github.com/pfrederiksen/bbwaa-awards/internal/table"
	"gopkg.in/yaml.v3"
)

// Years is a closed range of seasons
type Years struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// TableSelectors overrides positional table lookup with CSS selectors
type TableSelectors struct {
	Summary string `yaml:"summary,omitempty"`
	Detail  string `yaml:"detail,omitempty"`
}

// Config holds all run settings
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"` // 0 disables the request timeout
	OutputDir string        `yaml:"output_dir"`
	Workers   int           `yaml:"workers"`
	Verbose   bool          `yaml:"verbose"`
	Years     Years         `yaml:"years"`
	Leagues   []string      `yaml:"leagues"`
	Awards    []string      `yaml:"awards"`

	// Tables is keyed by award slug ("cy", "mvp")
	Tables map[string]TableSelectors `yaml:"tables,omitempty"`
}

// Default returns the settings used when no config file is given
func Default() *Config {
	return &Config{
		BaseURL:   award.BaseURL,
		UserAgent: scraper.UserAgent,
		Timeout:   scraper.Timeout,
		OutputDir: storage.DefaultDir,
		Workers:   1,
		Years:     Years{From: 2012, To: 2018},
		Leagues:   []string{"AL", "NL"},
		Awards:    []string{"cy", "mvp"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	var errs []error

	if c.BaseURL == "" {
		errs = append(errs, errors.New("base_url is empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if err := award.ValidateYear(c.Years.From); err != nil {
		errs = append(errs, fmt.Errorf("years.from: %w", err))
	}
	if err := award.ValidateYear(c.Years.To); err != nil {
		errs = append(errs, fmt.Errorf("years.to: %w", err))
	}
	if c.Years.To < c.Years.From {
		errs = append(errs, fmt.Errorf("years.to (%d) is before years.from (%d)", c.Years.To, c.Years.From))
	}
	if _, err := c.LeagueList(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.KindList(); err != nil {
		errs = append(errs, err)
	}
	for key := range c.Tables {
		if _, err := award.ParseKind(key); err != nil {
			errs = append(errs, fmt.Errorf("tables: %w", err))
		}
	}

	return errors.Join(errs...)
}

// LeagueList parses Leagues
func (c *Config) LeagueList() ([]award.League, error) {
	if len(c.Leagues) == 0 {
		return nil, errors.New("leagues is empty")
	}
	leagues := make([]award.League, 0, len(c.Leagues))
	for _, s := range c.Leagues {
		l, err := award.ParseLeague(s)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

// KindList parses Awards
func (c *Config) KindList() ([]award.Kind, error) {
	if len(c.Awards) == 0 {
		return nil, errors.New("awards is empty")
	}
	kinds := make([]award.Kind, 0, len(c.Awards))
	for _, s := range c.Awards {
		k, err := award.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Locators returns the table locators for an award. Cy Young keeps both tables
// on one page (summary first, ballots second); MVP has one table per page.
func (c *Config) Locators(kind award.Kind) map[award.Table]table.Locator {
	locs := map[award.Table]table.Locator{
		award.Summary: table.At(0),
		award.Detail:  table.At(0),
	}
	if kind == award.CyYoung {
		locs[award.Detail] = table.At(1)
	}

	for key, sel := range c.Tables {
		if k, err := award.ParseKind(key); err != nil || k != kind {
			continue
		}
		if sel.Summary != "" {
			locs[award.Summary] = table.Locator{Selector: sel.Summary}
		}
		if sel.Detail != "" {
			locs[award.Detail] = table.Locator{Selector: sel.Detail}
		}
	}
	return locs
}

// ScraperOptions maps the config onto fetcher options
func (c *Config) ScraperOptions() scraper.Options {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = -1
	}
	return scraper.Options{
		UserAgent: c.UserAgent,
		Timeout:   timeout,
		Verbose:   c.Verbose,
	}
}
