package csvgz

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeGzCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSourceGzip(t *testing.T) {
	path := writeGzCSV(t, "reviews.csv.gz",
		"listing_id,date,comments\n"+
			"1,2022-05-01,\"lovely, quiet place\"\n"+
			"2,2023-01-15,fine\n")

	src, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(src.Columns(), []string{"listing_id", "date", "comments"}) {
		t.Fatalf("unexpected columns: %v", src.Columns())
	}

	rec, err := src.Record()
	if err != nil {
		t.Fatal(err)
	}
	if rec["comments"] != "lovely, quiet place" {
		t.Fatalf("quoted field mangled: %q", rec["comments"])
	}
	if _, err := src.Record(); err != nil {
		t.Fatal(err)
	}
	if _, err := src.Record(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestSourcePlainCSVShortRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := NewSource(path)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := src.Record()
	if err != nil {
		t.Fatal(err)
	}
	if rec["a"] != "1" || rec["b"] != "2" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if _, ok := rec["c"]; ok {
		t.Fatalf("short row must leave trailing key absent: %v", rec)
	}
}

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		header []string
		expErr bool
	}{
		{header: []string{"a", "b"}, expErr: false},
		{header: []string{"a", ""}, expErr: true},
		{header: []string{"a", "a"}, expErr: true},
	}
	for i, test := range tests {
		err := validateHeader(test.header)
		if (err != nil) != test.expErr {
			t.Fatalf("test %d: expected err=%v, got %v", i, test.expErr, err)
		}
	}
}

func TestReadAll(t *testing.T) {
	path := writeGzCSV(t, "listings.csv.gz", "id,name\n10,Loft\n11,Studio\n")
	rows, cols, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1]["name"] != "Studio" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if !reflect.DeepEqual(cols, []string{"id", "name"}) {
		t.Fatalf("unexpected cols: %v", cols)
	}
}
