package dedup

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Class is the outcome of classifying a read.
type Class int

const (
	// Unique is the first read seen for a key.
	Unique Class = iota
	// Duplicate is any later read with the same key.
	Duplicate
)

func (c Class) String() string {
	if c == Unique {
		return "unique"
	}
	return "duplicate"
}

// UnsortedError reports a chromosome seen again after reads of another
// chromosome. Keys of the earlier group were already dropped, so duplicates
// across the two groups cannot be detected.
type UnsortedError struct {
	Chrom    string
	Previous string
}

func (e *UnsortedError) Error() string {
	return fmt.Sprintf("input is not sorted by chromosome: %s found again after %s", e.Chrom, e.Previous)
}

// Cache counts occurrences of duplicate keys for the chromosome currently
// being processed. Input must be grouped by chromosome: the cache is cleared
// whenever the chromosome changes.
type Cache struct {
	chrom     string
	bound     bool
	counts    map[Key]int
	seen      map[string]struct{}
	checkSort bool
}

// NewCache returns an empty Cache. If checkSort is true, Enter fails when a
// chromosome reappears after another one.
func NewCache(checkSort bool) *Cache {
	return &Cache{
		counts:    make(map[Key]int),
		seen:      make(map[string]struct{}),
		checkSort: checkSort,
	}
}

// Enter binds the cache to chrom, clearing it if chrom differs from the
// current chromosome.
func (c *Cache) Enter(chrom string) error {
	if c.bound && chrom == c.chrom {
		return nil
	}
	if c.checkSort {
		if _, ok := c.seen[chrom]; ok {
			return &UnsortedError{Chrom: chrom, Previous: c.chrom}
		}
		c.seen[chrom] = struct{}{}
	}
	if c.bound {
		log.WithFields(log.Fields{
			"chrom": c.Chrom(),
			"keys":  c.Len(),
		}).Debug("Leaving chromosome")
	}
	c.counts = make(map[Key]int)
	c.chrom = chrom
	c.bound = true
	return nil
}

// Classify records an occurrence of k and returns Unique the first time k is
// seen on its chromosome, Duplicate afterwards.
func (c *Cache) Classify(k Key) (Class, error) {
	if err := c.Enter(k.Chrom); err != nil {
		return Unique, err
	}
	n := c.counts[k]
	c.counts[k] = n + 1
	if n == 0 {
		return Unique, nil
	}
	return Duplicate, nil
}

// Count returns the number of occurrences of k recorded for the current
// chromosome.
func (c *Cache) Count(k Key) int {
	return c.counts[k]
}

// Len returns the number of distinct keys for the current chromosome.
func (c *Cache) Len() int {
	return len(c.counts)
}

// Chrom returns the current chromosome.
func (c *Cache) Chrom() string {
	return c.chrom
}
