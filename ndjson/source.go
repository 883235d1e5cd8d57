// Package ndjson reads newline-delimited JSON files one record at a
// time. It is the streaming front end for the multi-gigabyte Yelp
// dumps: a single forward pass, one decoded object per line, no
// buffering of the whole file.
package ndjson

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

// maxLineBytes bounds a single record. Review text runs long but
// nowhere near this.
const maxLineBytes = 16 * 1024 * 1024

// Progress intervals by input size. Big files report coarsely so a
// full pass stays at a few hundred log lines.
const (
	progressSmall  = 50000
	progressMedium = 100000
	progressLarge  = 500000
)

// Source is a tdk.Source over a newline-delimited JSON file. Each
// call to Record returns the next decoded object; malformed lines are
// logged with their 1-based line number and skipped. A Source is not
// restartable: open a new one to re-read the file.
type Source struct {
	path  string
	label string
	every int

	f    *os.File
	scan *bufio.Scanner
	line int
}

// Option is a functional option for NewSource.
type Option func(*Source)

// WithLabel sets the record-type label used in progress output
// ("reviews", "businesses", ...).
func WithLabel(label string) Option {
	return func(s *Source) {
		s.label = label
	}
}

// WithProgressEvery overrides the size-derived progress interval.
// Zero disables progress output.
func WithProgressEvery(every int) Option {
	return func(s *Source) {
		s.every = every
	}
}

// NewSource opens the file at path for a single streaming pass.
func NewSource(path string, opts ...Option) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "statting %s", path)
	}

	s := &Source{
		path:  path,
		label: "records",
		every: progressInterval(info.Size()),
		f:     f,
	}
	s.scan = bufio.NewScanner(f)
	s.scan.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// progressInterval picks a reporting interval appropriate to the
// input size: larger files report less often per line so a pass
// produces a bounded amount of output.
func progressInterval(size int64) int {
	switch {
	case size >= 1<<30:
		return progressLarge
	case size >= 100*(1<<20):
		return progressMedium
	default:
		return progressSmall
	}
}

// Record returns the next decoded object in the file. It returns
// io.EOF after the last line and closes the underlying file. Lines
// that fail to decode are skipped with a warning; they never abort
// the scan.
func (s *Source) Record() (map[string]interface{}, error) {
	if s.scan == nil {
		return nil, io.EOF
	}
	for s.scan.Scan() {
		s.line++
		if s.every > 0 && s.line%s.every == 0 {
			log.Printf("processed %d %s lines of %s", s.line, s.label, s.path)
		}
		var rec map[string]interface{}
		if err := json.Unmarshal(s.scan.Bytes(), &rec); err != nil {
			log.Printf("skipping malformed json line %d of %s: %v", s.line, s.path, err)
			continue
		}
		return rec, nil
	}
	err := s.scan.Err()
	s.scan = nil
	s.f.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "scanning %s", s.path)
	}
	return nil, io.EOF
}

// Line returns the number of lines consumed so far (1-based after the
// first Record call).
func (s *Source) Line() int { return s.line }

// Close releases the file handle early. Record closes it on EOF, so
// Close only matters for abandoned scans.
func (s *Source) Close() error {
	if s.scan == nil {
		return nil
	}
	s.scan = nil
	return s.f.Close()
}

// Count returns the total number of lines in the file, with the same
// progress reporting as a scan. It does not decode the lines.
func Count(path, label string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "statting %s", path)
	}
	every := progressInterval(info.Size())

	scan := bufio.NewScanner(f)
	scan.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	count := 0
	for scan.Scan() {
		count++
		if count%every == 0 {
			log.Printf("counted %d %s so far in %s", count, label, path)
		}
	}
	if err := scan.Err(); err != nil {
		return count, errors.Wrapf(err, "counting lines of %s", path)
	}
	log.Printf("total %s in %s: %d", label, path, count)
	return count, nil
}

// Peek returns the first n decoded records of the file, skipping
// malformed lines like a normal scan.
func Peek(path string, n int) ([]map[string]interface{}, error) {
	src, err := NewSource(path, WithProgressEvery(0))
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var out []map[string]interface{}
	for len(out) < n {
		rec, err := src.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
	return out, nil
}
