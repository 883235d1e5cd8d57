// Package csvgz reads tabular records from CSV files, transparently
// decompressing .gz inputs. It backs the InsideAirbnb pipeline, whose
// exports ship as listings.csv.gz / reviews.csv.gz.
package csvgz

import (
	"compress/gzip"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Source reads one CSV row at a time as a map keyed by the header
// row. Quoted fields (review comments contain commas and newlines)
// are handled by encoding/csv.
type Source struct {
	path   string
	f      *os.File
	gz     *gzip.Reader
	reader *csv.Reader
	header []string
}

// NewSource opens the CSV file at path. A ".gz" suffix selects gzip
// decompression. The first row is consumed as the header and
// validated for empty or duplicate names.
func NewSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	s := &Source{path: path, f: f}

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		s.gz, err = gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "gunzipping %s", path)
		}
		r = s.gz
	}
	s.reader = csv.NewReader(r)
	s.reader.LazyQuotes = true
	s.reader.FieldsPerRecord = -1

	header, err := s.reader.Read()
	if err != nil {
		s.Close()
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}
	if err := validateHeader(header); err != nil {
		s.Close()
		return nil, errors.Wrap(err, "validating header")
	}
	s.header = header
	return s, nil
}

func validateHeader(header []string) error {
	fields := make(map[string]int, len(header))
	for i, h := range header {
		if h == "" {
			return errors.Errorf("header contains empty name at %d: %v", i, header)
		}
		if pos, exists := fields[h]; exists {
			return errors.Errorf("%s appears at both %d and %d in header", h, pos, i)
		}
		fields[h] = i
	}
	return nil
}

// Columns returns the header row, for column-presence validation.
func (s *Source) Columns() []string {
	cols := make([]string, len(s.header))
	copy(cols, s.header)
	return cols
}

// Record returns the next row keyed by header name. Rows shorter than
// the header leave the trailing keys absent; extra unheadered cells
// are dropped. It returns io.EOF at end of file and closes the
// underlying handles.
func (s *Source) Record() (map[string]string, error) {
	if s.reader == nil {
		return nil, io.EOF
	}
	for {
		row, err := s.reader.Read()
		if err == io.EOF {
			s.Close()
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading row of %s", s.path)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue // skip blank lines
		}
		rec := make(map[string]string, len(s.header))
		for i, h := range s.header {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		return rec, nil
	}
}

// Close releases the underlying handles. It is safe to call after
// Record has returned io.EOF.
func (s *Source) Close() error {
	s.reader = nil
	if s.gz != nil {
		s.gz.Close()
		s.gz = nil
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}

// ReadAll drains a source into memory. Intended for the smaller
// listing tables, not for raw review files.
func ReadAll(path string) ([]map[string]string, []string, error) {
	src, err := NewSource(path)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	var rows []map[string]string
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return rows, src.Columns(), nil
		}
		if err != nil {
			return rows, src.Columns(), err
		}
		rows = append(rows, rec)
	}
}
