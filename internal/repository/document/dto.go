package document

import (
	"strconv"

	domdoc "github.com/kailas-cloud/docstats/internal/domain/document"
)

// Hash field names of a stored document.
const (
	fieldAuthor = "author"
	fieldText   = "text"
	fieldDate   = "date"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domdoc.Document) map[string]string {
	return map[string]string{
		fieldAuthor: doc.Author(),
		fieldText:   doc.Text(),
		fieldDate:   strconv.FormatInt(doc.Timestamp(), 10),
	}
}
