package chunk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetEncoder writes chunks as snappy-compressed parquet files.
// This is the default chunk format: one row group per chunk file,
// every column OPTIONAL, so the mixed-completeness Yelp records land
// without schema fights.
type ParquetEncoder struct {
	Fields []Field

	schema string
}

// NewParquetEncoder builds an encoder for the given schema.
func NewParquetEncoder(fields []Field) *ParquetEncoder {
	return &ParquetEncoder{Fields: fields, schema: parquetJSONSchema(fields)}
}

// Ext implements Encoder.
func (e *ParquetEncoder) Ext() string { return "parquet" }

// WriteChunk implements Encoder.
func (e *ParquetEncoder) WriteChunk(path string, recs []Record) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	pw, err := writer.NewJSONWriter(e.schema, fw, 1)
	if err != nil {
		fw.Close()
		return errors.Wrap(err, "creating parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, rec := range recs {
		row, err := json.Marshal(e.project(rec))
		if err != nil {
			fw.Close()
			return errors.Wrap(err, "marshaling row")
		}
		if err := pw.Write(string(row)); err != nil {
			fw.Close()
			return errors.Wrap(err, "writing row")
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return errors.Wrap(err, "finalizing parquet file")
	}
	return errors.Wrapf(fw.Close(), "closing %s", path)
}

// project narrows a record to the schema's columns and coerces the
// JSON-decoded values to the declared types. Absent or mistyped
// values become null.
func (e *ParquetEncoder) project(rec Record) map[string]interface{} {
	out := make(map[string]interface{}, len(e.Fields))
	for _, f := range e.Fields {
		v, ok := rec[f.Name]
		if !ok || v == nil {
			out[f.Name] = nil
			continue
		}
		switch f.Type {
		case String:
			if s, ok := v.(string); ok {
				out[f.Name] = s
			} else {
				out[f.Name] = nil
			}
		case Long:
			if n, ok := v.(float64); ok {
				out[f.Name] = int64(n)
			} else {
				out[f.Name] = nil
			}
		case Double:
			if n, ok := v.(float64); ok {
				out[f.Name] = n
			} else {
				out[f.Name] = nil
			}
		}
	}
	return out
}

func parquetJSONSchema(fields []Field) string {
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		var typ string
		switch f.Type {
		case String:
			typ = "type=BYTE_ARRAY, convertedtype=UTF8"
		case Long:
			typ = "type=INT64"
		case Double:
			typ = "type=DOUBLE"
		}
		tags = append(tags, fmt.Sprintf(`{"Tag":"name=%s, %s, repetitiontype=OPTIONAL"}`, f.Name, typ))
	}
	return fmt.Sprintf(`{"Tag":"name=parquet_go_root, repetitiontype=REQUIRED","Fields":[%s]}`, strings.Join(tags, ","))
}
