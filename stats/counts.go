package stats

import (
	"io"
	"text/template"

	"github.com/guigolab/umidedup/utils"
)

// Counts represents the number of records routed to each category.
type Counts struct {
	Deduplicated uint64 `json:"deduplicated"`
	Duplicate    uint64 `json:"duplicate"`
	Unmapped     uint64 `json:"unmapped"`
	Misindexed   uint64 `json:"misindexed"`
	Malformed    uint64 `json:"malformed,omitempty"`
	Headers      uint64 `json:"headers"`
}

// Collect counts one record of the given category.
func (c *Counts) Collect(cat Category) {
	switch cat {
	case Deduplicated:
		c.Deduplicated++
	case Duplicate:
		c.Duplicate++
	case Unmapped:
		c.Unmapped++
	case Misindexed:
		c.Misindexed++
	case Malformed:
		c.Malformed++
	}
}

// Get returns the count for a category.
func (c *Counts) Get(cat Category) uint64 {
	switch cat {
	case Deduplicated:
		return c.Deduplicated
	case Duplicate:
		return c.Duplicate
	case Unmapped:
		return c.Unmapped
	case Misindexed:
		return c.Misindexed
	case Malformed:
		return c.Malformed
	}
	return 0
}

// Total returns the number of data records seen.
func (c *Counts) Total() uint64 {
	return c.Deduplicated + c.Duplicate + c.Unmapped + c.Misindexed + c.Malformed
}

// DuplicationRate returns the fraction of mapped, correctly indexed records
// flagged as duplicates.
func (c *Counts) DuplicationRate() fraction {
	n := c.Deduplicated + c.Duplicate
	if n == 0 {
		return 0
	}
	return fraction(c.Duplicate) / fraction(n)
}

var summaryTemplate = template.Must(template.New("summary").Parse(`Deduplicated records:{{.Deduplicated}}
Duplicate records:{{.Duplicate}}
Unmapped records:{{.Unmapped}}
Misindexed records:{{.Misindexed}}
{{if .ShowMalformed}}Malformed records:{{.Malformed}}
{{end}}`))

// OutputText writes the summary as labeled counts, one per line. The
// malformed count is only written if showMalformed is set.
func (c *Counts) OutputText(out io.Writer, showMalformed bool) error {
	return summaryTemplate.Execute(out, struct {
		*Counts
		ShowMalformed bool
	}{c, showMalformed})
}

type summary struct {
	Records         *Counts  `json:"records"`
	Total           uint64   `json:"total"`
	DuplicationRate fraction `json:"duplication_rate"`
}

// OutputJSON writes the summary as JSON.
func (c *Counts) OutputJSON(out io.Writer) error {
	return utils.OutputJSON(out, summary{c, c.Total(), c.DuplicationRate()})
}
