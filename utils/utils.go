package utils

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// MissingResourceError reports an input file that cannot be opened.
type MissingResourceError struct {
	Path string
	Err  error
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

// NewReader opens a file for reading. Gzip compressed files are decompressed
// transparently and '-' reads from os.Stdin. An empty file yields a reader
// returning io.EOF.
func NewReader(path string) (*xopen.Reader, error) {
	if path != "-" {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, &MissingResourceError{path, err}
		}
		if fi.Mode().IsRegular() && fi.Size() == 0 {
			return emptyReader(), nil
		}
	}
	r, err := xopen.Ropen(path)
	if err == xopen.ErrNoContent {
		return emptyReader(), nil
	}
	if err != nil {
		return nil, &MissingResourceError{path, err}
	}
	return r, nil
}

func emptyReader() *xopen.Reader {
	return &xopen.Reader{Reader: bufio.NewReader(bytes.NewReader(nil))}
}

// NewWriter creates a file for writing. Output is gzip compressed if path
// ends with '.gz' and '-' writes to os.Stdout.
func NewWriter(path string) (*xopen.Writer, error) {
	w, err := xopen.Wopen(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return w, nil
}

// OutputName returns the path of an output file named
// <prefix>_<scheme><ext> inside dir.
func OutputName(dir, prefix, scheme, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", prefix, scheme, ext))
}

// OutputJSON writes the indented json representation of v to an io.Writer
func OutputJSON(writer io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = writer.Write(b)
	return err
}
