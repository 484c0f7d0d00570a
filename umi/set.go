// Package umi holds the list of known unique molecular identifiers.
package umi

import (
	"bufio"
	"io"
	"strings"

	"github.com/guigolab/umidedup/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var alphabet = map[rune]bool{
	'A': true,
	'C': true,
	'G': true,
	'T': true,
	'N': true,
}

// Set is a read-only set of known UMIs of a common length.
type Set struct {
	umis map[string]struct{}
	k    int
}

// NewSet reads a list of UMIs, one per line. Blank lines are ignored. UMIs
// are upper-cased and must consist of ACGTN and all have the same length.
func NewSet(r io.Reader) (*Set, error) {
	s := &Set{umis: make(map[string]struct{}), k: -1}
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		umi := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if umi == "" {
			continue
		}
		if s.k < 0 {
			s.k = len(umi)
		}
		if len(umi) != s.k {
			return nil, errors.Errorf("line %d: umi %s has length %d, other umis have length %d", n, umi, len(umi), s.k)
		}
		if err := validate(umi); err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		if _, ok := s.umis[umi]; ok {
			log.Warnf("Duplicated umi %s at line %d", umi, n)
		}
		s.umis[umi] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read umis")
	}
	if s.k < 0 {
		return nil, errors.New("no umis in input")
	}
	return s, nil
}

// ReadSet loads a Set from a file. Gzip compressed files are supported.
func ReadSet(path string) (*Set, error) {
	r, err := utils.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	s, err := NewSet(r)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	log.WithFields(log.Fields{
		"umis":   s.Len(),
		"length": s.Length(),
	}).Infof("Loaded umis from %s", path)
	return s, nil
}

func validate(umi string) error {
	for _, c := range umi {
		if !alphabet[c] {
			return errors.Errorf("invalid base %c in umi %v", c, umi)
		}
	}
	return nil
}

// Contains returns true if umi is a known UMI.
func (s *Set) Contains(umi string) bool {
	_, ok := s.umis[umi]
	return ok
}

// Len returns the number of distinct UMIs.
func (s *Set) Len() int {
	return len(s.umis)
}

// Length returns the common length of the UMIs.
func (s *Set) Length() int {
	return s.k
}
