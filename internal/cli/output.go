package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pfrederiksen/bbwaa-awards/internal/collect"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// JobOutput describes one job's outcome
type JobOutput struct {
	Job       string   `json:"job"`
	Year      int      `json:"year"`
	League    string   `json:"league"`
	Award     string   `json:"award"`
	Files     []string `json:"files,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorKind string   `json:"error_kind,omitempty"`
	Duration  string   `json:"duration"`
}

// OutputResult contains data to be output
type OutputResult struct {
	RunID      string                 `json:"run_id"`
	FinishedAt time.Time              `json:"finished_at"`
	Elapsed    string                 `json:"elapsed"`
	JobCount   int                    `json:"job_count"`
	Failed     int                    `json:"failed"`
	Jobs       []JobOutput            `json:"jobs"`
	Metrics    map[string]interface{} `json:"metrics,omitempty"`
}

// NewOutputResult converts a batch report for output
func NewOutputResult(report *collect.BatchReport) *OutputResult {
	result := &OutputResult{
		RunID:      report.RunID,
		FinishedAt: time.Now().UTC(),
		Elapsed:    report.Elapsed.Round(time.Millisecond).String(),
		JobCount:   len(report.Results),
		Failed:     report.Failed(),
		Jobs:       make([]JobOutput, 0, len(report.Results)),
	}

	for _, res := range report.Results {
		out := JobOutput{
			Job:      res.Job.String(),
			Year:     res.Job.Year,
			League:   string(res.Job.League),
			Award:    res.Job.Kind.FileLabel(),
			Files:    res.Files,
			Duration: res.Duration.Round(time.Millisecond).String(),
		}
		if res.Err != nil {
			out.Error = res.Err.Error()
			out.ErrorKind = collect.ErrorKind(res.Err)
		}
		result.Jobs = append(result.Jobs, out)
	}
	return result
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	if result.JobCount == 0 {
		fmt.Fprintln(w, "No jobs to run.")
		return nil
	}

	ok := color.New(color.FgGreen).SprintFunc()
	failed := color.New(color.FgRed, color.Bold).SprintFunc()

	for _, job := range result.Jobs {
		if job.Error == "" {
			fmt.Fprintf(w, "%-16s %s  %s\n", job.Job, ok("OK    "), strings.Join(job.Files, ", "))
			continue
		}
		fmt.Fprintf(w, "%-16s %s  %s: %s\n", job.Job, failed("FAILED"), job.ErrorKind, job.Error)
	}

	fmt.Fprintf(w, "\nTotal: %d jobs, %d failed (run %s, %s)\n",
		result.JobCount, result.Failed, result.RunID, result.Elapsed)

	if counters, found := result.Metrics["counters"].(map[string]int64); found && len(counters) > 0 {
		fmt.Fprintf(w, "Pages fetched: %d, failed: %d, files written: %d\n",
			counters["pages.fetched"], counters["pages.failed"], counters["files.written"])
	}

	return nil
}
