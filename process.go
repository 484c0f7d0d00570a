// Package umidedup removes PCR duplicates from chromosome sorted single-end
// SAM files using known UMIs.
package umidedup

import (
	"time"

	"github.com/guigolab/umidedup/config"
	"github.com/guigolab/umidedup/sam"
	"github.com/guigolab/umidedup/stats"
	"github.com/guigolab/umidedup/umi"
	"github.com/guigolab/umidedup/utils"
	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

// Process deduplicates the input SAM file of cfg, writing the four record
// streams and the summary. All outputs are closed before returning.
func Process(cfg *config.Config) (*stats.Counts, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	umis, err := umi.ReadSet(cfg.UMIs)
	if err != nil {
		return nil, err
	}
	if umis.Length() != sam.UMILength {
		log.Warnf("Known umis have length %d, read names carry %d letter umis: all mapped reads will be misindexed", umis.Length(), sam.UMILength)
	}
	in, err := utils.NewReader(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	out, err := CreateOutputs(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log.Infof("Deduplicating %s", cfg.Input)
	p := NewPipeline(cfg, umis, out)
	err = p.Run(in)
	if err == nil {
		err = p.WriteSummary()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"deduplicated": p.Counts.Deduplicated,
		"duplicate":    p.Counts.Duplicate,
		"unmapped":     p.Counts.Unmapped,
		"misindexed":   p.Counts.Misindexed,
	}).Infof("Done in %v", time.Since(start))
	return &p.Counts, nil
}
