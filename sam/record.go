package sam

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/hts/sam"
)

// MandatoryFields is the number of mandatory SAM columns.
const MandatoryFields = 11

// UMILength is the length of the UMI token at the end of read names.
const UMILength = 8

// Record holds the fields of a SAM data line needed for deduplication.
// Line is the raw line without its trailing newline and is what gets written
// to the output streams.
type Record struct {
	Line  []byte
	Name  string
	Flags sam.Flags
	Chrom string
	Pos   int
	Cigar string
}

// MalformedRecordError reports a data line that does not have the expected
// layout.
type MalformedRecordError struct {
	Line   int
	Reason string
	Text   string
}

func (e *MalformedRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed record at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed record: %s", e.Reason)
}

func malformed(format string, args ...interface{}) *MalformedRecordError {
	return &MalformedRecordError{Reason: fmt.Sprintf(format, args...)}
}

// ParseRecord parses the positional fields of a SAM data line. The UMI and
// the CIGAR operations are decoded lazily.
func ParseRecord(line []byte) (*Record, error) {
	f := bytes.Fields(line)
	if len(f) < MandatoryFields {
		return nil, malformed("expected at least %d fields, got %d", MandatoryFields, len(f))
	}
	flags, err := strconv.ParseUint(string(f[1]), 10, 16)
	if err != nil {
		return nil, malformed("invalid flag %q", f[1])
	}
	pos, err := strconv.Atoi(string(f[3]))
	if err != nil || pos < 0 {
		return nil, malformed("invalid position %q", f[3])
	}
	return &Record{
		Line:  line,
		Name:  string(f[0]),
		Flags: sam.Flags(flags),
		Chrom: string(f[2]),
		Pos:   pos,
		Cigar: string(f[5]),
	}, nil
}

// IsUnmapped returns true if the read is flagged as unmapped (0x4).
func (r *Record) IsUnmapped() bool {
	return r.Flags&sam.Unmapped == sam.Unmapped
}

// IsForward returns true unless the read is flagged as reverse complemented (0x10).
func (r *Record) IsForward() bool {
	return r.Flags&sam.Reverse == 0
}

// UMI returns the UMI embedded as the last colon separated segment of the
// read name.
func (r *Record) UMI() (string, error) {
	i := strings.LastIndexByte(r.Name, ':')
	if i < 0 {
		return "", malformed("no UMI in read name %q", r.Name)
	}
	umi := r.Name[i+1:]
	if len(umi) != UMILength {
		return "", malformed("UMI %q in read name %q is not %d letters long", umi, r.Name, UMILength)
	}
	for i := 0; i < len(umi); i++ {
		if umi[i] < 'A' || umi[i] > 'Z' {
			return "", malformed("UMI %q in read name %q is not upper case letters", umi, r.Name)
		}
	}
	return umi, nil
}
