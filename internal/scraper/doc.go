// Package scraper fetches bbwaa.com award pages and parses them into HTML documents.
//
// A fetch is a single GET with a fixed browser User-Agent. Any status other than
// 200 OK, and any transport failure, is returned as a FetchError; a document is
// only ever returned alongside a nil error.
package scraper
