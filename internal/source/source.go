// Package source reads upstream water-quality extracts into raw field-name →
// value records. Readers know file shapes and nothing else: no renaming, no
// coercion, no database. Re-opening the same extract yields the same record
// sequence.
package source

import "io"

// RawRecord is one source row keyed by the source's own column names.
type RawRecord map[string]string

// Iterator yields raw records lazily. Next returns io.EOF when the sequence
// is exhausted.
type Iterator interface {
	Next() (RawRecord, error)
	Close() error
}

// Extract provides the two record sequences a source program contributes.
// Either method may be called any number of times; each call restarts the
// sequence from the beginning.
type Extract interface {
	Tag() string
	Stations() (Iterator, error)
	Results() (Iterator, error)
}

// emptyIterator is used by formats that contribute no records for an entity.
type emptyIterator struct{}

func (emptyIterator) Next() (RawRecord, error) { return nil, io.EOF }
func (emptyIterator) Close() error             { return nil }
