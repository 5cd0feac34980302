package country

import (
	"fmt"

	"golang.org/x/text/cases"

	"onboard/pkg/platform/sentinel"
)

// Index is an immutable dataset with search keys folded once up front.
// It is safe for concurrent use.
type Index struct {
	records []Record
	keys    []string
	byCode  map[string]int
}

// NewIndex builds an index over records. The caller must not modify records
// afterwards.
func NewIndex(records []Record) *Index {
	fold := cases.Fold()
	idx := &Index{
		records: records,
		keys:    make([]string, len(records)),
		byCode:  make(map[string]int, len(records)),
	}
	for i, rec := range records {
		idx.keys[i] = fold.String(rec.Name)
		idx.byCode[rec.Code] = i
	}
	return idx
}

// Search behaves like the package-level Search over the indexed records.
func (x *Index) Search(query string) []Record {
	if query == "" {
		return x.records
	}
	return rank(x.records, x.keys, cases.Fold().String(query))
}

// Lookup returns the record for a code, ignoring case and surrounding space.
func (x *Index) Lookup(code string) (Record, error) {
	i, ok := x.byCode[NormalizeCode(code)]
	if !ok {
		return Record{}, fmt.Errorf("country %q: %w", code, sentinel.ErrNotFound)
	}
	return x.records[i], nil
}

// Contains reports whether code is in the dataset.
func (x *Index) Contains(code string) bool {
	_, ok := x.byCode[NormalizeCode(code)]
	return ok
}

// Len is the number of indexed records.
func (x *Index) Len() int {
	return len(x.records)
}
