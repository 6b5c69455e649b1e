// Package dataset reads delimited text files into header-keyed rows.
package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// sniffSize is how much of a file is inspected to pick a delimiter.
const sniffSize = 4096

// Candidates are the delimiters Sniff chooses from.
var Candidates = []rune{'\t', ',', ';', '|'}

// Row is one record keyed by header name.
type Row = map[string]string

// ReadError wraps a failure to parse a dataset file.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read dataset %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// ReadFile reads the file at path. A missing file yields no rows and no error.
// The delimiter is sniffed from the start of the file, falling back to
// defaultDelim.
func ReadFile(path string, defaultDelim rune) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ReadError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f, defaultDelim)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return rows, nil
}

// Read parses delimited text with a header line from r.
func Read(r io.Reader, defaultDelim rune) ([]Row, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	sample, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = Sniff(sample, defaultDelim)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range header {
		h = clean(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = clean(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Sniff picks a delimiter from the header line of sample: the candidate that
// occurs most often in the header and at least once in every following line.
// It returns defaultDelim when no candidate qualifies.
func Sniff(sample []byte, defaultDelim rune) rune {
	var lines [][]byte
	for _, line := range bytes.Split(sample, []byte("\n")) {
		if line = bytes.TrimRight(line, "\r"); len(line) > 0 {
			lines = append(lines, line)
		}
	}
	// the last line may be cut off by the sample boundary
	if len(lines) > 2 && !bytes.HasSuffix(sample, []byte("\n")) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return defaultDelim
	}

	best, bestCount := defaultDelim, 0
	for _, d := range Candidates {
		sep := []byte(string(d))
		n := bytes.Count(lines[0], sep)
		if n <= bestCount {
			continue
		}
		consistent := true
		for _, line := range lines[1:] {
			if !bytes.Contains(line, sep) {
				consistent = false
				break
			}
		}
		if consistent {
			best, bestCount = d, n
		}
	}
	return best
}

func clean(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}
