// Package cli implements the command-line interface for bbwaa-awards.
//
// The cli package provides the Cobra-based commands: cy and mvp scrape one
// season and league, batch scrapes a range of seasons for every configured award
// and league and reports each job's outcome as text or JSON. It wires the config,
// scraper and collect packages together and sets up the structured logger.
package cli
