package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ugswater/dbseeder/internal/domain"
)

// csvIterator streams one delimited source as raw records. The header row is
// read eagerly on open so a malformed stream fails before any record is
// yielded.
type csvIterator struct {
	src    io.ReadCloser
	reader *csv.Reader
	header []string
}

// NewCSV wraps a delimited stream as an Iterator and validates that every
// column in required is present in the header. A missing column or an
// unreadable header is a FormatError: the stream does not match the shape its
// format tag promises. name identifies the stream in errors, e.g. a file path
// or a URL.
func NewCSV(tag, name string, src io.ReadCloser, comma rune, required []string) (Iterator, error) {
	r := csv.NewReader(src)
	r.Comma = comma
	// Portal extracts occasionally carry ragged trailing columns.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		src.Close()
		return nil, &domain.FormatError{Source: tag, Path: name, Reason: fmt.Sprintf("cannot read header: %v", err)}
	}

	have := make(map[string]struct{}, len(header))
	for _, col := range header {
		have[col] = struct{}{}
	}
	for _, col := range required {
		if _, ok := have[col]; !ok {
			src.Close()
			return nil, &domain.FormatError{Source: tag, Path: name, Reason: fmt.Sprintf("missing column %q", col)}
		}
	}

	return &csvIterator{src: src, reader: r, header: header}, nil
}

// openCSV opens a delimited file as an Iterator.
func openCSV(tag, path string, comma rune, required []string) (Iterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewCSV(tag, path, f, comma, required)
}

func (it *csvIterator) Next() (RawRecord, error) {
	row, err := it.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}

	rec := make(RawRecord, len(it.header))
	for i, col := range it.header {
		if i < len(row) {
			rec[col] = row[i]
		}
	}
	return rec, nil
}

func (it *csvIterator) Close() error {
	return it.src.Close()
}

// multiIterator chains several file iterators into one sequence, opening each
// file only when the previous one is exhausted.
type multiIterator struct {
	open    []func() (Iterator, error)
	current Iterator
}

func (m *multiIterator) Next() (RawRecord, error) {
	for {
		if m.current == nil {
			if len(m.open) == 0 {
				return nil, io.EOF
			}
			it, err := m.open[0]()
			if err != nil {
				return nil, err
			}
			m.open = m.open[1:]
			m.current = it
		}

		rec, err := m.current.Next()
		if errors.Is(err, io.EOF) {
			m.current.Close()
			m.current = nil
			continue
		}
		return rec, err
	}
}

func (m *multiIterator) Close() error {
	if m.current != nil {
		err := m.current.Close()
		m.current = nil
		return err
	}
	return nil
}
