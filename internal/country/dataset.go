package country

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
)

//go:embed data/countries.json
var countriesJSON []byte

var embedded = sync.OnceValues(func() ([]Record, error) {
	return LoadDataset(bytes.NewReader(countriesJSON))
})

// Dataset returns a copy of the embedded ISO 3166-1 reference dataset,
// ordered by display name.
func Dataset() []Record {
	records, err := embedded()
	if err != nil {
		panic(fmt.Sprintf("country: embedded dataset is invalid: %v", err))
	}
	return slices.Clone(records)
}

// LoadDataset decodes a JSON array of records and checks every record plus
// code uniqueness. Order is preserved.
func LoadDataset(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode country dataset: %w", err)
	}
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[rec.Code]; dup {
			return nil, fmt.Errorf("duplicate country code %s", rec.Code)
		}
		seen[rec.Code] = struct{}{}
	}
	return records, nil
}
