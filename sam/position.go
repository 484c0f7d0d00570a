package sam

import (
	"github.com/biogo/hts/sam"
	log "github.com/sirupsen/logrus"
)

// NormalizedStart returns the clipping adjusted start of the read used as
// its duplicate coordinate.
func (r *Record) NormalizedStart() (int, error) {
	if r.IsForward() {
		return ForwardStart(r.Cigar, r.Pos), nil
	}
	return ReverseStart(r.Cigar, r.Pos)
}

// ForwardStart subtracts a leading soft clip from pos. The position is
// returned unchanged if the CIGAR does not start with a soft clip or cannot
// be parsed.
func ForwardStart(cigar string, pos int) int {
	c, err := sam.ParseCigar([]byte(cigar))
	if err != nil {
		log.WithFields(log.Fields{
			"cigar": cigar,
		}).Debugf("Keeping raw start: %v", err)
		return pos
	}
	if len(c) > 0 && c[0].Type() == sam.CigarSoftClipped {
		return pos - c[0].Len()
	}
	return pos
}

// ReverseStart adds to pos the lengths of the M, S, D and N operations found
// from the first M operation onward.
func ReverseStart(cigar string, pos int) (int, error) {
	c, err := sam.ParseCigar([]byte(cigar))
	if err != nil {
		return 0, malformed("invalid cigar %q: %v", cigar, err)
	}
	first := -1
	for i, co := range c {
		if co.Type() == sam.CigarMatch {
			first = i
			break
		}
	}
	if first < 0 {
		return 0, malformed("no match operation in cigar %q of reverse read", cigar)
	}
	for _, co := range c[first:] {
		switch co.Type() {
		case sam.CigarMatch, sam.CigarSoftClipped, sam.CigarDeletion, sam.CigarSkipped:
			pos += co.Len()
		}
	}
	return pos, nil
}
