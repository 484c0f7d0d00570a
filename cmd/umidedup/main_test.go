package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/guigolab/umidedup/config"
	"github.com/pkg/errors"
)

func TestBuildVersion(t *testing.T) {
	for i, c := range []struct {
		version, commit, date string
		expected              string
	}{
		{"1.2.0", "", "", "version: 1.2.0"},
		{"1.2.0", "abc123", "", "version: 1.2.0\ncommit: abc123"},
		{"1.2.0", "abc123", "2019-07-01", "version: 1.2.0\ncommit: abc123\nbuilt at: 2019-07-01"},
		{"", "", "", "version: 0.1.0"},
	} {
		v := buildVersion(c.version, c.commit, c.date)
		if v != c.expected {
			t.Errorf("[%d] Expected %q, got %q", i, c.expected, v)
		}
	}
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetOutput(ioutil.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestUnsupportedModes(t *testing.T) {
	for i, flag := range []string{"--pairedend", "-p", "--randomers", "-r"} {
		err := execute("-s", "in.sam", "-u", "umis.txt", "-n", "run1", flag)
		if _, ok := errors.Cause(err).(*config.ConfigurationError); !ok {
			t.Errorf("[%d] %s: expected *config.ConfigurationError, got %v", i, flag, err)
		}
	}
}

func TestRequiredFlags(t *testing.T) {
	if err := execute("-u", "umis.txt", "-n", "run1"); err == nil {
		t.Errorf("Expected an error for a missing --samfile")
	}
}

func TestRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "umidedup-cmd")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	input := filepath.Join(dir, "in.sam")
	umis := filepath.Join(dir, "umis.txt")
	sam := "@HD\tVN:1.6\tSO:coordinate\n" +
		"r1:AACGCCAT\t0\t2\t105\t36\t5S70M\t*\t0\t0\tGTCT\tEEEE\n" +
		"r2:AACGCCAT\t0\t2\t100\t36\t70M\t*\t0\t0\tGTCT\tEEEE\n"
	if err := ioutil.WriteFile(input, []byte(sam), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(umis, []byte("AACGCCAT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")
	if err := execute("-s", input, "-u", umis, "-n", "run1", "-o", out, "--no-sort-check", "--loglevel", "error"); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(filepath.Join(out, "summary_run1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	expected := "Deduplicated records:1\nDuplicate records:1\nUnmapped records:0\nMisindexed records:0\n"
	if string(b) != expected {
		t.Errorf("Expected %q, got %q", expected, b)
	}
}
