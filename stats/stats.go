// Package stats collects per-category record counts.
package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type fraction float64

func (m fraction) String() string {
	return fmt.Sprintf("%.6g", float64(m))
}

func (m fraction) MarshalJSON() ([]byte, error) {
	v, err := strconv.ParseFloat(m.String(), 64)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Category is the output stream a data record is routed to.
type Category int

const (
	Deduplicated Category = iota
	Duplicate
	Unmapped
	Misindexed
	// Malformed records are dropped and only counted.
	Malformed
)

var categories = [...]string{
	Deduplicated: "deduplicated",
	Duplicate:    "duplicate",
	Unmapped:     "unmapped",
	Misindexed:   "misindexed",
	Malformed:    "malformed",
}

// String returns the string representation of a Category.
func (c Category) String() string {
	if c < Deduplicated || c > Malformed {
		return "unknown"
	}
	return categories[c]
}
