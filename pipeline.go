package umidedup

import (
	"io"

	"github.com/guigolab/umidedup/config"
	"github.com/guigolab/umidedup/dedup"
	"github.com/guigolab/umidedup/sam"
	"github.com/guigolab/umidedup/stats"
	"github.com/guigolab/umidedup/umi"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var newline = []byte{'\n'}

// Pipeline routes the records of a SAM file to the output streams and counts
// them.
type Pipeline struct {
	Counts stats.Counts

	cfg   *config.Config
	umis  *umi.Set
	out   *Outputs
	cache *dedup.Cache
}

// NewPipeline returns a Pipeline writing to out.
func NewPipeline(cfg *config.Config, umis *umi.Set, out *Outputs) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		umis:  umis,
		out:   out,
		cache: dedup.NewCache(cfg.CheckSort),
	}
}

// Run reads SAM lines from r. Header lines are copied to the deduplicated,
// duplicate and unmapped streams and each data record to the stream of its
// category.
func (p *Pipeline) Run(r io.Reader) error {
	s := sam.NewScanner(r, p.cfg.MaxBuf)
	checked := false
	for s.Next() {
		if s.IsHeader() {
			p.Counts.Headers++
			if err := p.writeHeader(s.Line()); err != nil {
				return err
			}
			continue
		}
		if !checked {
			checkHeader(s.Header())
			checked = true
		}
		cat, err := p.route(s)
		if err != nil {
			if e, ok := err.(*sam.MalformedRecordError); ok && p.cfg.SkipMalformed {
				log.WithFields(log.Fields{
					"line":   e.Line,
					"record": e.Text,
				}).Warnf("Skipping record: %s", e.Reason)
				p.Counts.Collect(stats.Malformed)
				continue
			}
			return err
		}
		p.Counts.Collect(cat)
		if err := p.write(p.out.Writer(cat), s.Line()); err != nil {
			return err
		}
	}
	if p.cache.Chrom() != "" {
		log.WithFields(log.Fields{
			"chrom": p.cache.Chrom(),
			"keys":  p.cache.Len(),
		}).Debug("Last chromosome done")
	}
	return errors.Wrap(s.Error(), "read input")
}

func (p *Pipeline) route(s *sam.Scanner) (stats.Category, error) {
	r, err := s.Record()
	if err != nil {
		return stats.Malformed, err
	}
	cat, err := p.Classify(r)
	if err != nil {
		if _, ok := err.(*sam.MalformedRecordError); ok {
			return cat, s.Annotate(err)
		}
		return cat, errors.Wrapf(err, "line %d", s.LineNumber())
	}
	return cat, nil
}

// Classify returns the category of a record.
func (p *Pipeline) Classify(r *sam.Record) (stats.Category, error) {
	if r.IsUnmapped() {
		return stats.Unmapped, nil
	}
	u, err := r.UMI()
	if err != nil {
		return stats.Malformed, err
	}
	if err := p.cache.Enter(r.Chrom); err != nil {
		return stats.Malformed, err
	}
	if !p.umis.Contains(u) {
		return stats.Misindexed, nil
	}
	pos, err := r.NormalizedStart()
	if err != nil {
		return stats.Malformed, err
	}
	key := dedup.Key{Chrom: r.Chrom, UMI: u, Forward: r.IsForward(), Pos: pos}
	cl, err := p.cache.Classify(key)
	if err != nil {
		return stats.Malformed, err
	}
	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithFields(log.Fields{
			"read":  r.Name,
			"key":   key,
			"class": cl,
			"seen":  p.cache.Count(key),
		}).Trace("Classified read")
	}
	if cl == dedup.Duplicate {
		return stats.Duplicate, nil
	}
	return stats.Deduplicated, nil
}

func (p *Pipeline) writeHeader(line []byte) error {
	for _, cat := range []stats.Category{stats.Deduplicated, stats.Duplicate, stats.Unmapped} {
		if err := p.write(p.out.Writer(cat), line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) write(w io.Writer, line []byte) error {
	if _, err := w.Write(line); err != nil {
		return errors.Wrap(err, "write record")
	}
	if _, err := w.Write(newline); err != nil {
		return errors.Wrap(err, "write record")
	}
	return nil
}

// WriteSummary writes the counts to the summary output.
func (p *Pipeline) WriteSummary() error {
	var err error
	switch p.cfg.SummaryFormat {
	case config.JSONSummary:
		err = p.Counts.OutputJSON(p.out.Summary)
	default:
		err = p.Counts.OutputText(p.out.Summary, p.cfg.SkipMalformed)
	}
	return errors.Wrap(err, "write summary")
}

func checkHeader(text []byte) {
	if len(text) == 0 {
		return
	}
	so, err := sam.SortOrder(text)
	if err != nil {
		log.Warnf("Cannot check sort order: %v", err)
		return
	}
	if !sam.IsCoordinateSorted(so) {
		log.Warnf("Input header declares %s sort order, reads are expected to be sorted by chromosome", so)
	}
}
