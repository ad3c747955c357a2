package collect

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/bbwaa-awards/internal/award"
	"github.com/pfrederiksen/bbwaa-awards/internal/logger"
	"github.com/pfrederiksen/bbwaa-awards/internal/scraper"
	"github.com/pfrederiksen/bbwaa-awards/internal/table"
	"golang.org/x/sync/errgroup"
)

// BatchReport summarizes a batch run
type BatchReport struct {
	RunID   string
	Results []Result
	Elapsed time.Duration
}

// Failed counts jobs that did not write their files
func (r *BatchReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Jobs builds the configured job list in batch order
func (c *Collector) Jobs() ([]award.Job, error) {
	kinds, err := c.cfg.KindList()
	if err != nil {
		return nil, err
	}
	leagues, err := c.cfg.LeagueList()
	if err != nil {
		return nil, err
	}
	return award.Jobs(c.cfg.Years.From, c.cfg.Years.To, kinds, leagues), nil
}

// RunBatch runs every job with at most cfg.Workers in flight. A job's failure is
// recorded on its Result and the batch carries on. Results keep job order.
// Once ctx is done, jobs that have not started report ctx's error.
func (c *Collector) RunBatch(ctx context.Context, jobs []award.Job) *BatchReport {
	report := &BatchReport{
		RunID:   uuid.New().String(),
		Results: make([]Result, len(jobs)),
	}
	log := c.log.With(logger.Fields{"run_id": report.RunID})
	run := &Collector{fetcher: c.fetcher, cfg: c.cfg, log: log}

	workers := c.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	log.Info("Starting batch", logger.Fields{"jobs": len(jobs), "workers": workers})
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(workers)

	for i, job := range jobs {
		job := job // per-iteration copy; go directive is 1.21 (pre-loopvar semantics)
		res := &report.Results[i]
		res.Job = job

		if err := ctx.Err(); err != nil {
			res.Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Err = err
				return nil
			}

			jobStart := time.Now()
			res.Files, res.Err = run.Scrape(ctx, job, "")
			res.Duration = time.Since(jobStart)

			if res.Err != nil {
				logger.IncrCounter("jobs.failed")
				log.Warn("Job failed", logger.Fields{
					"job":   job.String(),
					"kind":  ErrorKind(res.Err),
					"error": res.Err.Error(),
				})
			}
			return nil
		})
	}
	g.Wait()

	report.Elapsed = time.Since(start)
	log.Info("Batch finished", logger.Fields{
		"jobs":    len(jobs),
		"failed":  report.Failed(),
		"elapsed": report.Elapsed.String(),
	})
	return report
}

// ErrorKind classifies a job error for reporting
func ErrorKind(err error) string {
	var (
		usageErr     *award.UsageError
		fetchErr     *scraper.FetchError
		malformedErr *table.MalformedTableError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &usageErr):
		return "usage"
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &malformedErr):
		return "malformed"
	default:
		return "io"
	}
}
