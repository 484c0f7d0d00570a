package umidedup

import (
	"io"
	"os"

	"github.com/guigolab/umidedup/config"
	"github.com/guigolab/umidedup/stats"
	"github.com/guigolab/umidedup/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var streamPrefixes = map[stats.Category]string{
	stats.Deduplicated: "deduplicated",
	stats.Duplicate:    "duplicates",
	stats.Unmapped:     "unmapped",
	stats.Misindexed:   "misindexed",
}

// Outputs holds the four record streams and the summary of a run.
type Outputs struct {
	streams map[stats.Category]io.Writer
	Summary io.Writer
	closers []io.Closer
}

// NewOutputs returns Outputs writing to the given writers. Writers
// implementing io.Closer are closed by Close.
func NewOutputs(deduplicated, duplicate, unmapped, misindexed, summary io.Writer) *Outputs {
	o := &Outputs{
		streams: map[stats.Category]io.Writer{
			stats.Deduplicated: deduplicated,
			stats.Duplicate:    duplicate,
			stats.Unmapped:     unmapped,
			stats.Misindexed:   misindexed,
		},
		Summary: summary,
	}
	for _, w := range []io.Writer{deduplicated, duplicate, unmapped, misindexed, summary} {
		if c, ok := w.(io.Closer); ok {
			o.closers = append(o.closers, c)
		}
	}
	return o
}

// OutputNames returns the paths of the record streams and of the summary
// for a configuration.
func OutputNames(cfg *config.Config) (map[stats.Category]string, string) {
	ext := ".sam"
	if cfg.Gzip {
		ext += ".gz"
	}
	names := make(map[stats.Category]string, len(streamPrefixes))
	for cat, prefix := range streamPrefixes {
		names[cat] = utils.OutputName(cfg.OutDir, prefix, cfg.NamingScheme, ext)
	}
	summaryExt := ".txt"
	if cfg.SummaryFormat == config.JSONSummary {
		summaryExt = ".json"
	}
	return names, utils.OutputName(cfg.OutDir, "summary", cfg.NamingScheme, summaryExt)
}

// CreateOutputs creates the output files of a run. Files already created are
// closed if a later one fails.
func CreateOutputs(cfg *config.Config) (*Outputs, error) {
	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}
	names, summaryName := OutputNames(cfg)
	var w [5]io.Writer
	for i, path := range []string{
		names[stats.Deduplicated],
		names[stats.Duplicate],
		names[stats.Unmapped],
		names[stats.Misindexed],
		summaryName,
	} {
		f, err := utils.NewWriter(path)
		if err != nil {
			NewOutputs(w[0], w[1], w[2], w[3], w[4]).Close()
			return nil, err
		}
		log.Debugf("Writing %s", path)
		w[i] = f
	}
	return NewOutputs(w[0], w[1], w[2], w[3], w[4]), nil
}

// Writer returns the stream for a category, or nil if the category has no
// stream.
func (o *Outputs) Writer(cat stats.Category) io.Writer {
	return o.streams[cat]
}

// Close closes all outputs and returns the first error.
func (o *Outputs) Close() error {
	var err error
	for _, c := range o.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	o.closers = nil
	return err
}
