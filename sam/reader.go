package sam

import (
	"bufio"
	"bytes"
	"io"
)

// DefaultMaxBuf is the default maximum line length accepted by a Scanner.
const DefaultMaxBuf = 1 << 20

// Scanner reads a SAM file line by line, separating header lines from data
// records. Bytes returned by Line and records returned by Record are only
// valid until the next call to Next.
type Scanner struct {
	s      *bufio.Scanner
	line   []byte
	n      int
	header bytes.Buffer
}

// NewScanner returns a Scanner reading from r. Lines longer than maxBuf bytes
// make the Scanner fail.
func NewScanner(r io.Reader, maxBuf int) *Scanner {
	if maxBuf <= 0 {
		maxBuf = DefaultMaxBuf
	}
	size := 64 * 1024
	if maxBuf < size {
		size = maxBuf
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, size), maxBuf)
	s.Split(scanLines)
	return &Scanner{s: s}
}

// scanLines splits on '\n' only. A '\r' before the newline stays part of
// the line so that CRLF input is written back unchanged.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Next advances to the next non-empty line.
func (s *Scanner) Next() bool {
	for s.s.Scan() {
		s.n++
		s.line = s.s.Bytes()
		if len(bytes.TrimRight(s.line, "\r")) == 0 {
			continue
		}
		if s.IsHeader() {
			s.header.Write(bytes.TrimRight(s.line, "\r"))
			s.header.WriteByte('\n')
		}
		return true
	}
	return false
}

// Line returns the current line without the trailing newline. A carriage
// return before the newline is kept.
func (s *Scanner) Line() []byte {
	return s.line
}

// LineNumber returns the 1-based number of the current line.
func (s *Scanner) LineNumber() int {
	return s.n
}

// IsHeader returns true if the current line is a header line.
func (s *Scanner) IsHeader() bool {
	return len(s.line) > 0 && s.line[0] == '@'
}

// Record parses the current line as a data record. Errors are
// *MalformedRecordError values carrying the line number.
func (s *Scanner) Record() (*Record, error) {
	r, err := ParseRecord(s.line)
	if err != nil {
		return nil, s.Annotate(err)
	}
	return r, nil
}

// Annotate sets the current line number on a *MalformedRecordError. Other
// errors are returned unchanged.
func (s *Scanner) Annotate(err error) error {
	if e, ok := err.(*MalformedRecordError); ok {
		e.Line = s.n
		e.Text = string(s.line)
	}
	return err
}

// Header returns the header lines read so far.
func (s *Scanner) Header() []byte {
	return s.header.Bytes()
}

// Error returns the first error encountered while reading.
func (s *Scanner) Error() error {
	return s.s.Err()
}
