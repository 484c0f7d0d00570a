package sam

import (
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// SortOrder returns the sort order declared in the @HD line of a SAM header.
// Headers without @HD yield sam.UnknownOrder.
func SortOrder(text []byte) (sam.SortOrder, error) {
	h, err := sam.NewHeader(text, nil)
	if err != nil {
		return sam.UnknownOrder, errors.Wrap(err, "parse header")
	}
	return h.SortOrder, nil
}

// IsCoordinateSorted returns false only when the header explicitly declares
// an order other than coordinate.
func IsCoordinateSorted(so sam.SortOrder) bool {
	return so == sam.UnknownOrder || so == sam.Coordinate
}
