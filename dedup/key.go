// Package dedup identifies PCR duplicates among reads of a chromosome sorted
// alignment.
package dedup

import "fmt"

// Key identifies a group of duplicates: reads on the same chromosome and
// strand, with the same UMI and normalized start.
type Key struct {
	Chrom   string
	UMI     string
	Forward bool
	Pos     int
}

func (k Key) String() string {
	strand := '+'
	if !k.Forward {
		strand = '-'
	}
	return fmt.Sprintf("(%s,%s,%c,%d)", k.Chrom, k.UMI, strand, k.Pos)
}
