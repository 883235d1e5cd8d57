package chunk

import (
	"encoding/json"
	"os"

	"github.com/linkedin/goavro/v2"
	"github.com/pkg/errors"
)

// AvroEncoder writes chunks as snappy-compressed Avro object
// container files. Offered as an interchange alternative to parquet
// for consumers that stream row-wise.
type AvroEncoder struct {
	// Name is the Avro record name for the schema.
	Name   string
	Fields []Field

	schema string
}

// NewAvroEncoder builds an encoder whose schema declares every field
// as a nullable union.
func NewAvroEncoder(name string, fields []Field) (*AvroEncoder, error) {
	schema, err := avroSchema(name, fields)
	if err != nil {
		return nil, err
	}
	return &AvroEncoder{Name: name, Fields: fields, schema: schema}, nil
}

// Ext implements Encoder.
func (e *AvroEncoder) Ext() string { return "avro" }

// Schema returns the Avro schema JSON.
func (e *AvroEncoder) Schema() string { return e.schema }

// WriteChunk implements Encoder.
func (e *AvroEncoder) WriteChunk(path string, recs []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	ocf, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               f,
		Schema:          e.schema,
		CompressionName: goavro.CompressionSnappyLabel,
	})
	if err != nil {
		f.Close()
		return errors.Wrap(err, "creating ocf writer")
	}

	natives := make([]interface{}, 0, len(recs))
	for _, rec := range recs {
		natives = append(natives, e.native(rec))
	}
	if err := ocf.Append(natives); err != nil {
		f.Close()
		return errors.Wrap(err, "appending records")
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}

// native converts a decoded record to goavro's native form, wrapping
// present values in the union type name the schema declares.
func (e *AvroEncoder) native(rec Record) map[string]interface{} {
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
				out[f.Name] = map[string]interface{}{"string": s}
			} else {
				out[f.Name] = nil
			}
		case Long:
			if n, ok := v.(float64); ok {
				out[f.Name] = map[string]interface{}{"long": int64(n)}
			} else {
				out[f.Name] = nil
			}
		case Double:
			if n, ok := v.(float64); ok {
				out[f.Name] = map[string]interface{}{"double": n}
			} else {
				out[f.Name] = nil
			}
		}
	}
	return out
}

func avroSchema(name string, fields []Field) (string, error) {
	type avroField struct {
		Name    string        `json:"name"`
		Type    []interface{} `json:"type"`
		Default interface{}   `json:"default"`
	}
	typeName := map[FieldType]string{String: "string", Long: "long", Double: "double"}

	afs := make([]avroField, 0, len(fields))
	for _, f := range fields {
		afs = append(afs, avroField{
			Name: f.Name,
			Type: []interface{}{"null", typeName[f.Type]},
		})
	}
	schema := map[string]interface{}{
		"type":   "record",
		"name":   name,
		"fields": afs,
	}
	b, err := json.Marshal(schema)
	if err != nil {
		return "", errors.Wrap(err, "marshaling avro schema")
	}
	return string(b), nil
}
