package table

import (
	"github.com/PuerkitoBio/goquery"
)

// Locator finds one table in a document. A non-empty Selector takes precedence
// and must match exactly one table; otherwise the table is chosen by its zero-based
// position among all table elements. Positional lookup depends on the page
// keeping its table order and breaks silently if tables are added or reordered.
type Locator struct {
	Selector string
	Index    int
}

// At returns a positional locator
func At(index int) Locator {
	return Locator{Index: index}
}

// Select resolves the locator against a document
func Select(doc *goquery.Document, loc Locator) (*goquery.Selection, error) {
	if loc.Selector != "" {
		sel := doc.Find(loc.Selector).Filter("table")
		switch sel.Length() {
		case 0:
			return nil, malformed("no table matches selector %q", loc.Selector)
		case 1:
			return sel, nil
		default:
			return nil, malformed("selector %q matches %d tables", loc.Selector, sel.Length())
		}
	}

	tables := doc.Find("table")
	if loc.Index < 0 || loc.Index >= tables.Length() {
		return nil, malformed("page has %d tables, wanted table %d", tables.Length(), loc.Index)
	}
	return tables.Eq(loc.Index), nil
}
