package config

import (
	"fmt"
	"strings"
)

// Summary formats.
const (
	TextSummary = "text"
	JSONSummary = "json"
)

// ConfigurationError reports an invalid or unsupported run option.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Option, e.Reason)
}

// Config holds the options of a deduplication run.
type Config struct {
	Input, UMIs, NamingScheme, OutDir string
	SummaryFormat                     string
	PairedEnd, Randomers              bool
	Gzip, SkipMalformed, CheckSort    bool
	MaxBuf                            int
}

// NewConfig returns a Config with default values for everything but the
// required inputs.
func NewConfig(input, umis, namingScheme string) *Config {
	return &Config{
		Input:         input,
		UMIs:          umis,
		NamingScheme:  namingScheme,
		OutDir:        ".",
		SummaryFormat: TextSummary,
		CheckSort:     true,
	}
}

// Validate checks that the configuration describes a supported run.
func (c *Config) Validate() error {
	if c.PairedEnd {
		return &ConfigurationError{"pairedend", "paired-end data is not supported"}
	}
	if c.Randomers {
		return &ConfigurationError{"randomers", "randomers are not supported, known umis are required"}
	}
	for _, o := range []struct {
		name, value string
	}{
		{"samfile", c.Input},
		{"umi", c.UMIs},
		{"namingscheme", c.NamingScheme},
	} {
		if o.value == "" {
			return &ConfigurationError{o.name, "a value is required"}
		}
	}
	if strings.ContainsRune(c.NamingScheme, '/') {
		return &ConfigurationError{"namingscheme", "must not contain path separators"}
	}
	switch c.SummaryFormat {
	case TextSummary, JSONSummary:
	default:
		return &ConfigurationError{"summary-format", fmt.Sprintf("unknown format %q", c.SummaryFormat)}
	}
	if c.MaxBuf < 0 {
		return &ConfigurationError{"max-buf", "must not be negative"}
	}
	return nil
}
