// Package country holds the reference country dataset and the type-ahead
// search used by the country selector.
package country

import (
	"strings"

	"golang.org/x/text/cases"
)

// Search ranks dataset against query for the type-ahead selector.
//
// An empty query returns dataset itself, in its original order. Otherwise
// the result holds, case-insensitively, every record whose name starts with
// query followed by every record whose name contains query elsewhere. Both
// groups keep dataset order and records matching neither are dropped.
// dataset is never modified.
func Search(dataset []Record, query string) []Record {
	if query == "" {
		return dataset
	}
	fold := cases.Fold()
	keys := make([]string, len(dataset))
	for i, rec := range dataset {
		keys[i] = fold.String(rec.Name)
	}
	return rank(dataset, keys, fold.String(query))
}

// rank partitions records by how keys[i] matches the folded needle. keys
// must be parallel to records.
func rank(records []Record, keys []string, needle string) []Record {
	var prefix, contains []Record
	for i, key := range keys {
		switch idx := strings.Index(key, needle); {
		case idx == 0:
			prefix = append(prefix, records[i])
		case idx > 0:
			contains = append(contains, records[i])
		}
	}
	if len(prefix) == 0 && len(contains) == 0 {
		return []Record{}
	}
	return append(prefix, contains...)
}
