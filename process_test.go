package umidedup

import (
	"compress/gzip"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/guigolab/umidedup/config"
	"github.com/guigolab/umidedup/stats"
	"github.com/guigolab/umidedup/utils"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	r1 = record("NS500451:154:HWKTMBGXX:1:11101:24260:1121:AACGCCAT", "0", "2", "105", "5S70M")
	r2 = record("NS500451:154:HWKTMBGXX:1:11101:18996:1145:AACGCCAT", "0", "2", "105", "5S70M")
	r3 = record("NS500451:154:HWKTMBGXX:1:11101:10568:1142:TTTTTTTT", "0", "2", "300", "70M")
	r4 = record("NS500451:154:HWKTMBGXX:1:11101:2271:1152:AACGCCAT", "4", "*", "0", "*")
)

func setup(t *testing.T, gz bool) (string, *config.Config) {
	dir, err := ioutil.TempDir("", "umidedup")
	require.NoError(t, err)

	input := filepath.Join(dir, "input.sam")
	data := []byte(header + r1 + r2 + r3 + r4)
	if gz {
		input += ".gz"
		f, err := os.Create(input)
		require.NoError(t, err)
		zw := gzip.NewWriter(f)
		_, err = zw.Write(data)
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())
	} else {
		require.NoError(t, ioutil.WriteFile(input, data, 0644))
	}
	umis := filepath.Join(dir, "STL96.txt")
	require.NoError(t, ioutil.WriteFile(umis, []byte(knownUMIs), 0644))

	cfg := config.NewConfig(input, umis, "test")
	cfg.OutDir = filepath.Join(dir, "out")
	return dir, cfg
}

func readOutput(t *testing.T, path string) string {
	r, err := utils.NewReader(path)
	require.NoError(t, err)
	defer r.Close()
	b, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestProcess(t *testing.T) {
	dir, cfg := setup(t, false)
	defer os.RemoveAll(dir)

	counts, err := Process(cfg)
	require.NoError(t, err)
	assert.Equal(t, stats.Counts{Deduplicated: 1, Duplicate: 1, Unmapped: 1, Misindexed: 1, Headers: 3}, *counts)

	out := cfg.OutDir
	assert.Equal(t, header+r1, readOutput(t, filepath.Join(out, "deduplicated_test.sam")))
	assert.Equal(t, header+r2, readOutput(t, filepath.Join(out, "duplicates_test.sam")))
	assert.Equal(t, header+r4, readOutput(t, filepath.Join(out, "unmapped_test.sam")))
	assert.Equal(t, r3, readOutput(t, filepath.Join(out, "misindexed_test.sam")))
	assert.Equal(t, "Deduplicated records:1\nDuplicate records:1\nUnmapped records:1\nMisindexed records:1\n",
		readOutput(t, filepath.Join(out, "summary_test.txt")))
}

func TestProcessGzip(t *testing.T) {
	dir, cfg := setup(t, true)
	defer os.RemoveAll(dir)
	cfg.Gzip = true
	cfg.SummaryFormat = config.JSONSummary

	_, err := Process(cfg)
	require.NoError(t, err)

	names, summary := OutputNames(cfg)
	assert.Equal(t, filepath.Join(cfg.OutDir, "deduplicated_test.sam.gz"), names[stats.Deduplicated])
	assert.Equal(t, filepath.Join(cfg.OutDir, "summary_test.json"), summary)
	assert.Equal(t, header+r1, readOutput(t, names[stats.Deduplicated]))
	assert.Equal(t, header+r2, readOutput(t, names[stats.Duplicate]))
	assert.Contains(t, readOutput(t, summary), "\"misindexed\": 1")
}

func TestProcessUnsupported(t *testing.T) {
	for _, edit := range []func(*config.Config){
		func(c *config.Config) { c.PairedEnd = true },
		func(c *config.Config) { c.Randomers = true },
	} {
		dir, cfg := setup(t, false)
		edit(cfg)
		_, err := Process(cfg)
		_, ok := errors.Cause(err).(*config.ConfigurationError)
		assert.True(t, ok, "expected *config.ConfigurationError, got %v", err)
		_, err = os.Stat(cfg.OutDir)
		assert.True(t, os.IsNotExist(err), "no output expected")
		os.RemoveAll(dir)
	}
}

func TestProcessMissingResource(t *testing.T) {
	for _, edit := range []func(*config.Config){
		func(c *config.Config) { c.Input += ".missing" },
		func(c *config.Config) { c.UMIs += ".missing" },
	} {
		dir, cfg := setup(t, false)
		edit(cfg)
		_, err := Process(cfg)
		_, ok := errors.Cause(err).(*utils.MissingResourceError)
		assert.True(t, ok, "expected *utils.MissingResourceError, got %v", err)
		_, err = os.Stat(cfg.OutDir)
		assert.True(t, os.IsNotExist(err), "no output expected")
		os.RemoveAll(dir)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	dir, cfg := setup(t, false)
	defer os.RemoveAll(dir)
	require.NoError(t, ioutil.WriteFile(cfg.Input, []byte{}, 0644))

	counts, err := Process(cfg)
	require.NoError(t, err)
	assert.Equal(t, stats.Counts{}, *counts)
	names, summary := OutputNames(cfg)
	for _, name := range names {
		assert.Equal(t, "", readOutput(t, name))
	}
	assert.Equal(t, "Deduplicated records:0\nDuplicate records:0\nUnmapped records:0\nMisindexed records:0\n",
		readOutput(t, summary))
}

func TestProcessEmptyUMIs(t *testing.T) {
	dir, cfg := setup(t, false)
	defer os.RemoveAll(dir)
	require.NoError(t, ioutil.WriteFile(cfg.UMIs, []byte{}, 0644))

	_, err := Process(cfg)
	require.Error(t, err)
	_, ok := errors.Cause(err).(*utils.MissingResourceError)
	assert.False(t, ok, "empty umi list is not a missing resource: %v", err)
	assert.Contains(t, err.Error(), "no umis in input")
}

func TestProcessMalformed(t *testing.T) {
	dir, cfg := setup(t, false)
	defer os.RemoveAll(dir)
	require.NoError(t, ioutil.WriteFile(cfg.Input, []byte(header+r1+"broken line\n"+r2), 0644))

	_, err := Process(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
	// outputs were released and hold what was routed before the failure
	assert.Equal(t, header+r1, readOutput(t, filepath.Join(cfg.OutDir, "deduplicated_test.sam")))

	cfg.SkipMalformed = true
	counts, err := Process(cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), counts.Malformed)
	assert.Contains(t, readOutput(t, filepath.Join(cfg.OutDir, "summary_test.txt")), "Malformed records:1\n")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", Version())
}
