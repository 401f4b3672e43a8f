package advice

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKey derives the cache key for a query: Unicode NFKC, case-folded,
// with runs of whitespace collapsed to one space. Matching stays exact; two
// queries share an entry only when their normalized text is identical.
func NormalizeKey(query string) string {
	s := norm.NFKC.String(query)
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
