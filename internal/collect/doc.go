// Package collect runs award scrapes: fetch the result pages for one
// (year, league, award) job, extract the summary and ballot tables, and write
// them as CSV.
//
// A job fetches and extracts both of its tables before writing either, so a
// fetch or markup failure leaves the output directory untouched. RunBatch executes many jobs
// with a bounded number of workers, recording each job's outcome without letting
// one failure stop the rest.
package collect
