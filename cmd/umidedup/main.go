package main

import (
	"fmt"
	"os"

	"github.com/guigolab/umidedup"
	"github.com/guigolab/umidedup/config"
	"github.com/guigolab/umidedup/sam"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = ""
	commit  = ""
	date    = ""
)

type options struct {
	cfg         *config.Config
	loglevel    string
	noSortCheck bool
}

func run(cmd *cobra.Command, opts *options) (err error) {
	// Set loglevel
	level, err := log.ParseLevel(opts.loglevel)
	if err != nil {
		return
	}
	log.SetLevel(level)

	cfg := opts.cfg
	cfg.CheckSort = !opts.noSortCheck
	logger := log.WithFields(log.Fields{
		"version":   version,
		"commit":    commit,
		"buildTime": date,
	})
	logger.Infof("Running %s", cmd.Use)
	log.WithFields(log.Fields{
		"input":        cfg.Input,
		"umis":         cfg.UMIs,
		"namingScheme": cfg.NamingScheme,
		"outdir":       cfg.OutDir,
	}).Info("Options")

	_, err = umidedup.Process(cfg)
	return
}

func setUmidedupFlags(c *cobra.Command, opts *options) {
	cfg := opts.cfg
	c.Flags().StringVarP(&cfg.Input, "samfile", "s", "", "chromosome sorted SAM file, '-' for stdin (required)")
	c.Flags().StringVarP(&cfg.UMIs, "umi", "u", "", "file with known umis, one per line (required)")
	c.Flags().StringVarP(&cfg.NamingScheme, "namingscheme", "n", "", "naming scheme added at the end of all output file names (required)")
	c.Flags().StringVarP(&cfg.OutDir, "outdir", "o", ".", "output directory")
	c.Flags().BoolVarP(&cfg.PairedEnd, "pairedend", "p", false, "paired-end data (not supported)")
	c.Flags().BoolVarP(&cfg.Randomers, "randomers", "r", false, "randomer umis (not supported, known umis are required)")
	c.Flags().BoolVarP(&cfg.Gzip, "gzip", "z", false, "gzip compress the SAM outputs")
	c.Flags().StringVarP(&cfg.SummaryFormat, "summary-format", "", config.TextSummary, "summary format (text, json)")
	c.Flags().BoolVarP(&cfg.SkipMalformed, "skip-malformed", "", false, "skip and count malformed records instead of failing")
	c.Flags().BoolVarP(&opts.noSortCheck, "no-sort-check", "", false, "do not fail when a chromosome is found again after another one")
	c.Flags().IntVarP(&cfg.MaxBuf, "max-buf", "", sam.DefaultMaxBuf, "maximum length of a SAM line in bytes")
	c.Flags().StringVarP(&opts.loglevel, "loglevel", "", "warn", "logging level")
	c.MarkFlagRequired("samfile")
	c.MarkFlagRequired("umi")
	c.MarkFlagRequired("namingscheme")

	c.SetVersionTemplate(`{{with .Name}}{{printf "== %s ==\n" .}}{{end}}{{printf "%s\n" .Version}}`)
}

func buildVersion(version, commit, date string) string {
	if version == "" {
		version = umidedup.Version()
	}
	var result = fmt.Sprintf("version: %s", version)
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.NewConfig("", "", "")}
	var rootCmd = &cobra.Command{
		Use:   "umidedup",
		Short: "Remove PCR duplicates",
		Long:  "umidedup - remove PCR duplicates from chromosome sorted single-end SAM files using known UMIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
		Version:       buildVersion(version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	setUmidedupFlags(rootCmd, opts)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
