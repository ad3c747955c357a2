// Package award defines the vocabulary shared by the BBWAA award scrapers.
//
// The award package models leagues (AL/NL), award kinds (Cy Young, MVP) and the
// (year, league, kind) jobs the batch driver runs. It also owns the URL templates
// for the bbwaa.com result pages and the naming scheme for the CSV files written
// for each job.
package award
