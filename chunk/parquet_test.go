package chunk

import (
	"os"
	"strings"
	"testing"
)

func TestParquetJSONSchema(t *testing.T) {
	enc := NewParquetEncoder([]Field{
		{Name: "review_id", Type: String},
		{Name: "useful", Type: Long},
		{Name: "stars", Type: Double},
	})
	schema := enc.schema
	for _, want := range []string{
		`name=review_id, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL`,
		`name=useful, type=INT64, repetitiontype=OPTIONAL`,
		`name=stars, type=DOUBLE, repetitiontype=OPTIONAL`,
	} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema missing %q:\n%s", want, schema)
		}
	}
}

func TestParquetProject(t *testing.T) {
	enc := NewParquetEncoder([]Field{
		{Name: "id", Type: String},
		{Name: "count", Type: Long},
		{Name: "score", Type: Double},
	})
	out := enc.project(Record{
		"id":    "a",
		"count": 3.0,
		"score": 4.5,
		"extra": "dropped",
	})
	if out["id"] != "a" {
		t.Fatalf("unexpected id: %v", out["id"])
	}
	if out["count"] != int64(3) {
		t.Fatalf("long not coerced: %#v", out["count"])
	}
	if out["score"] != 4.5 {
		t.Fatalf("unexpected score: %v", out["score"])
	}
	if _, ok := out["extra"]; ok {
		t.Fatal("columns outside the schema must be dropped")
	}

	out = enc.project(Record{"count": "nope"})
	if out["id"] != nil || out["count"] != nil {
		t.Fatalf("absent/mistyped values must become null: %v", out)
	}
}

func TestParquetWriteChunk(t *testing.T) {
	enc := NewParquetEncoder([]Field{
		{Name: "id", Type: String},
		{Name: "n", Type: Long},
	})
	dir := t.TempDir()
	path := Path(dir, "p", 0, enc.Ext())
	recs := []Record{
		{"id": "a", "n": 1.0},
		{"id": "b"},
	}
	if err := enc.WriteChunk(path, recs); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("parquet chunk is empty")
	}
}
