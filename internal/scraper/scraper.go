package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/bbwaa-awards/internal/logger"
)

const (
	// UserAgent is sent with every request; the site rejects obvious bot agents
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_13_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/59.0.3071.115 Safari/537.36"
	Timeout   = 30 * time.Second
)

// Fetcher retrieves and parses one page
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

var _ Fetcher = (*Scraper)(nil)

// FetchError reports a page that could not be retrieved
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures a Scraper. Zero values select the defaults.
type Options struct {
	UserAgent string
	// Timeout bounds each request; negative disables the timeout
	Timeout time.Duration
	Verbose bool
	Logger  *logger.Logger
}

// Scraper fetches award pages over HTTP
type Scraper struct {
	client    *http.Client
	userAgent string
	verbose   bool
	log       *logger.Logger
}

// New creates a Scraper with the default User-Agent and timeout
func New() *Scraper {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Scraper from opts
func NewWithOptions(opts Options) *Scraper {
	timeout := opts.Timeout
	switch {
	case timeout == 0:
		timeout = Timeout
	case timeout < 0:
		timeout = 0
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = UserAgent
	}

	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	return &Scraper{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
		verbose:   opts.Verbose,
		log:       log,
	}
}

// Fetch issues a GET for url and parses the response body
func (s *Scraper) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("page.fetch", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, s.fail(&FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)})
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.fail(&FetchError{URL: url, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.fail(&FetchError{URL: url, StatusCode: resp.StatusCode})
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, s.fail(&FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("parsing HTML: %w", err)})
	}

	logger.IncrCounter("pages.fetched")
	if s.verbose {
		s.log.Debug("Fetched page", logger.Fields{"url": url, "status": resp.StatusCode})
	}
	return doc, nil
}

func (s *Scraper) fail(err *FetchError) error {
	logger.IncrCounter("pages.failed")
	if s.verbose {
		s.log.Debug("Failed to fetch page", logger.Fields{
			"url":    err.URL,
			"status": err.StatusCode,
		})
	}
	return err
}
