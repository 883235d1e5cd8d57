package yelp

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/chunk"
)

// Chunk output formats.
const (
	FormatParquet = "parquet"
	FormatAvro    = "avro"
)

// ConvertResult reports what a conversion did.
type ConvertResult struct {
	// Skipped is true when chunk files for the prefix already existed
	// and the source was not read at all.
	Skipped bool
	Chunks  int
	Records int
}

// EncoderFor builds the chunk encoder for a format/kind pair.
func EncoderFor(format, kind string) (chunk.Encoder, error) {
	fields, err := FieldsFor(kind)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatParquet:
		return chunk.NewParquetEncoder(fields), nil
	case FormatAvro:
		return chunk.NewAvroEncoder(kind, fields)
	default:
		return nil, errors.Errorf("unknown chunk format %q, want parquet or avro", format)
	}
}

// ChunkSource drains any Source into chunk files of size records
// under dir, named with prefix. Returns the chunk and record counts.
func ChunkSource(source tdk.Source, dir, prefix string, size int, enc chunk.Encoder) (int, int, error) {
	w, err := chunk.NewWriter(dir, prefix, size, enc)
	if err != nil {
		return 0, 0, err
	}
	for {
		rec, err := source.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, errors.Wrap(err, "scanning source")
		}
		if err := w.Add(rec); err != nil {
			return 0, 0, err
		}
	}
	return w.Close()
}

// ConvertToChunks streams the NDJSON file at src into compressed
// chunk files of size records under dir, named with prefix. If any
// {prefix}_chunk_* file already exists under dir the whole conversion
// is skipped and the existing chunk count returned, even when the
// source has changed since. A manifest sidecar is written after a
// successful conversion for out-of-band auditing; the skip check does
// not read it.
func ConvertToChunks(src, dir, prefix string, size int, format, kind string) (ConvertResult, error) {
	exists, n, err := chunk.Existing(dir, prefix)
	if err != nil {
		return ConvertResult{}, err
	}
	if exists {
		log.Printf("[SKIP] %d chunks already exist for %s under %s", n, prefix, dir)
		return ConvertResult{Skipped: true, Chunks: n}, nil
	}

	enc, err := EncoderFor(format, kind)
	if err != nil {
		return ConvertResult{}, err
	}
	source, err := newScanSource(src, kind)
	if err != nil {
		return ConvertResult{}, errors.Wrap(err, "opening source")
	}
	defer source.Close()

	chunks, records, err := ChunkSource(source, dir, prefix, size, enc)
	if err != nil {
		return ConvertResult{Chunks: chunks, Records: records}, err
	}

	var srcBytes int64
	if info, err := os.Stat(src); err == nil {
		srcBytes = info.Size()
	}
	if err := chunk.WriteManifest(dir, chunk.Manifest{
		Source:      src,
		SourceBytes: srcBytes,
		Prefix:      prefix,
		ChunkSize:   size,
		Chunks:      chunks,
		Records:     records,
	}); err != nil {
		return ConvertResult{Chunks: chunks, Records: records}, err
	}

	log.Printf("converted %s: %d records into %d %s chunks under %s", src, records, chunks, format, dir)
	return ConvertResult{Chunks: chunks, Records: records}, nil
}

// ConvertMain is the configuration for the convert subcommand.
type ConvertMain struct {
	Source    string `help:"NDJSON source file to convert."`
	Dir       string `help:"Directory for chunk output (bronze 01_raw_conversion)."`
	Prefix    string `help:"Chunk file prefix, e.g. 'yelp_review'."`
	ChunkSize int    `help:"Records per chunk file."`
	Format    string `help:"Chunk format: parquet or avro."`
	Kind      string `help:"Record kind: business, review or user."`
}

// NewConvertMain returns a ConvertMain with defaults.
func NewConvertMain() *ConvertMain {
	return &ConvertMain{
		ChunkSize: 100000,
		Format:    FormatParquet,
		Kind:      KindReview,
	}
}

// Run performs the conversion.
func (m *ConvertMain) Run() error {
	if m.Source == "" || m.Dir == "" || m.Prefix == "" {
		return errors.New("source, dir and prefix are required")
	}
	res, err := ConvertToChunks(m.Source, m.Dir, m.Prefix, m.ChunkSize, m.Format, m.Kind)
	if err != nil {
		return errors.Wrap(err, "converting to chunks")
	}
	if res.Skipped {
		log.Printf("conversion skipped: %d chunks present", res.Chunks)
	}
	return nil
}
