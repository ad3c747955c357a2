// Package storage writes extracted award tables to disk as CSV files.
//
// The storage package owns the output directory (created on demand, with ~
// expanded to the home directory) and the CSV layout: a header row of column
// names followed by one row per aligned set of values. The default output
// location is ./data/.
package storage
