// Package chunk persists ordered record streams as fixed-size batches,
// one compressed columnar file per batch. Chunk files are named
// {prefix}_chunk_00000.{ext} onward and are never rewritten: a
// directory that already holds chunks for a prefix is treated as a
// completed conversion and skipped wholesale (see Existing).
package chunk

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Record is one decoded row bound for a chunk file.
type Record = map[string]interface{}

// FieldType enumerates the column types a chunk schema supports.
type FieldType int

const (
	String FieldType = iota
	Long
	Double
)

// Field describes one column of a chunk schema. Every column is
// nullable: records simply omit keys they don't carry.
type Field struct {
	Name string
	Type FieldType
}

// Encoder serializes one batch of records to a self-contained file.
type Encoder interface {
	// Ext is the file extension (without dot) for chunk names.
	Ext() string
	// WriteChunk writes recs to a new file at path.
	WriteChunk(path string, recs []Record) error
}

// Writer accumulates records and flushes a chunk file every Size
// records. It is owned by a single scanning pass; there is no
// concurrent use.
type Writer struct {
	dir    string
	prefix string
	size   int
	enc    Encoder

	buf     []Record
	index   int
	records int
}

// NewWriter returns a Writer that flushes chunks of exactly size
// records (the final chunk may be smaller) into dir under prefix.
func NewWriter(dir, prefix string, size int, enc Encoder) (*Writer, error) {
	if size < 1 {
		return nil, errors.Errorf("chunk size must be positive, got %d", size)
	}
	return &Writer{
		dir:    dir,
		prefix: prefix,
		size:   size,
		enc:    enc,
		buf:    make([]Record, 0, size),
	}, nil
}

// Add appends a record to the in-progress chunk, flushing to disk
// when the chunk boundary is reached.
func (w *Writer) Add(rec Record) error {
	w.buf = append(w.buf, rec)
	w.records++
	if len(w.buf) == w.size {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	path := Path(w.dir, w.prefix, w.index, w.enc.Ext())
	if err := w.enc.WriteChunk(path, w.buf); err != nil {
		return errors.Wrapf(err, "writing chunk %s", path)
	}
	w.index++
	w.buf = w.buf[:0]
	return nil
}

// Close flushes the trailing partial chunk, if any, and reports how
// many chunks and records were written.
func (w *Writer) Close() (chunks, records int, err error) {
	if err := w.flush(); err != nil {
		return w.index, w.records, err
	}
	return w.index, w.records, nil
}

// WriteAll chunks an in-memory record slice. Convenience wrapper over
// Writer for callers that already hold the filtered records.
func WriteAll(dir, prefix string, size int, enc Encoder, recs []Record) (int, error) {
	w, err := NewWriter(dir, prefix, size, enc)
	if err != nil {
		return 0, err
	}
	for _, rec := range recs {
		if err := w.Add(rec); err != nil {
			return w.index, err
		}
	}
	chunks, _, err := w.Close()
	return chunks, err
}

// Path builds the chunk file name for index under dir:
// {prefix}_chunk_{00000..}.{ext}, zero-padded to five digits.
func Path(dir, prefix string, index int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_chunk_%05d.%s", prefix, index, ext))
}

// Existing reports whether any chunk files for prefix are present in
// dir, and how many. Any match means the whole conversion is treated
// as already complete; the check deliberately does not validate
// counts or source freshness (the manifest sidecar exists for
// out-of-band audits).
func Existing(dir, prefix string) (bool, int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"_chunk_*"))
	if err != nil {
		return false, 0, errors.Wrapf(err, "globbing %s", dir)
	}
	return len(matches) > 0, len(matches), nil
}

// Files lists the chunk files for prefix in index order.
func Files(dir, prefix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"_chunk_*"))
	if err != nil {
		return nil, errors.Wrapf(err, "globbing %s", dir)
	}
	sort.Strings(matches)
	return matches, nil
}
