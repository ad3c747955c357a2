// Package table converts HTML tables into column-oriented record sets.
//
// The bbwaa.com result tables tag each header cell and every data cell of the
// same logical column with a shared CSS class, so extraction matches cells to
// columns by class token rather than by grid position. Tables whose markup
// breaks that assumption are rejected with a MalformedTableError.
package table
