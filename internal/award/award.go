package award

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BaseURL is the host serving the award result pages
const BaseURL = "https://bbwaa.com"

// League is a baseball league code
type League string

const (
	AL League = "AL"
	NL League = "NL"
)

// Leagues lists every league in batch order
var Leagues = []League{AL, NL}

// UsageError reports an invalid argument supplied by the caller
type UsageError struct {
	Field string
	Value string
	Hint  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Hint)
}

// ParseLeague normalizes a league code, accepting any case
func ParseLeague(s string) (League, error) {
	switch League(strings.ToUpper(strings.TrimSpace(s))) {
	case AL:
		return AL, nil
	case NL:
		return NL, nil
	}
	return "", &UsageError{Field: "league", Value: s, Hint: "must specify league as AL or NL"}
}

// slug returns the lowercase code used in page URLs
func (l League) slug() string {
	return strings.ToLower(string(l))
}

// Kind identifies an award
type Kind string

const (
	CyYoung Kind = "cy"
	MVP     Kind = "mvp"
)

// Kinds lists every award in batch order
var Kinds = []Kind{CyYoung, MVP}

// ParseKind accepts the URL slug or the file label of an award, in any case
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cy", "cyyoung", "cy-young":
		return CyYoung, nil
	case "mvp":
		return MVP, nil
	}
	return "", &UsageError{Field: "award", Value: s, Hint: "must be cy or mvp"}
}

// FileLabel is the award name used in output file names
func (k Kind) FileLabel() string {
	switch k {
	case CyYoung:
		return "CyYoung"
	case MVP:
		return "MVP"
	}
	return string(k)
}

// ValidateYear rejects seasons that cannot map to a result page
func ValidateYear(year int) error {
	if year < 1000 || year > 9999 {
		return &UsageError{Field: "year", Value: fmt.Sprintf("%d", year), Hint: "must be a four-digit season"}
	}
	return nil
}

// Table names one of the two tables produced per job
type Table string

const (
	Summary Table = "summary"
	Detail  Table = "detail"
)

// Job is a single (year, league, award) scrape
type Job struct {
	Year   int
	League League
	Kind   Kind
}

// String renders the job as "2015 AL CyYoung"
func (j Job) String() string {
	return fmt.Sprintf("%d %s %s", j.Year, j.League, j.Kind.FileLabel())
}

// pagePath builds "/15-al-cy/" style paths; suffix is appended to the award slug
func (j Job) pagePath(suffix string) string {
	return fmt.Sprintf("/%02d-%s-%s%s/", j.Year%100, j.League.slug(), j.Kind, suffix)
}

// PageURL returns the page holding the given table for this job.
// Cy Young results live on one page; MVP ballots have their own page.
func (j Job) PageURL(base string, t Table) string {
	base = strings.TrimRight(base, "/")
	if j.Kind == MVP && t == Detail {
		return base + j.pagePath("-ballots")
	}
	return base + j.pagePath("")
}

// FileName returns "2015_AL_CyYoung_summary.csv" style names
func (j Job) FileName(t Table) string {
	return fmt.Sprintf("%d_%s_%s_%s.csv", j.Year, j.League, j.Kind.FileLabel(), t)
}

// FilePath joins the job's file name onto dir
func (j Job) FilePath(dir string, t Table) string {
	return filepath.Join(dir, j.FileName(t))
}

// Jobs expands a closed year range into jobs in batch order: for each year,
// every award, and for each award every league.
func Jobs(from, to int, kinds []Kind, leagues []League) []Job {
	if to < from {
		return nil
	}
	jobs := make([]Job, 0, (to-from+1)*len(kinds)*len(leagues))
	for year := from; year <= to; year++ {
		for _, k := range kinds {
			for _, l := range leagues {
				jobs = append(jobs, Job{Year: year, League: l, Kind: k})
			}
		}
	}
	return jobs
}
