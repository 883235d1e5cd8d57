package chunk

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// captureEncoder records the batches it is asked to write.
type captureEncoder struct {
	paths   []string
	batches [][]Record
	touch   bool
}

func (c *captureEncoder) Ext() string { return "cap" }

func (c *captureEncoder) WriteChunk(path string, recs []Record) error {
	batch := make([]Record, len(recs))
	copy(batch, recs)
	c.paths = append(c.paths, path)
	c.batches = append(c.batches, batch)
	if c.touch {
		return os.WriteFile(path, []byte("x"), 0o644)
	}
	return nil
}

func rec(i int) Record {
	return Record{"id": fmt.Sprintf("%d", i)}
}

func TestWriterChunkInvariant(t *testing.T) {
	tests := []struct {
		n, size   int
		expChunks int
	}{
		{n: 0, size: 5, expChunks: 0},
		{n: 1, size: 5, expChunks: 1},
		{n: 5, size: 5, expChunks: 1},
		{n: 6, size: 5, expChunks: 2},
		{n: 10, size: 5, expChunks: 2},
		{n: 11, size: 5, expChunks: 3},
		{n: 7, size: 1, expChunks: 7},
		{n: 3, size: 100, expChunks: 1},
	}

	for _, test := range tests {
		enc := &captureEncoder{}
		w, err := NewWriter(t.TempDir(), "p", test.size, enc)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < test.n; i++ {
			if err := w.Add(rec(i)); err != nil {
				t.Fatal(err)
			}
		}
		chunks, records, err := w.Close()
		if err != nil {
			t.Fatal(err)
		}
		if chunks != test.expChunks {
			t.Fatalf("n=%d size=%d: expected %d chunks, got %d", test.n, test.size, test.expChunks, chunks)
		}
		if records != test.n {
			t.Fatalf("n=%d size=%d: expected %d records, got %d", test.n, test.size, test.n, records)
		}

		// All chunks but the last hold exactly size records, and the
		// concatenation reproduces the input order and count.
		total := 0
		for i, batch := range enc.batches {
			if i < len(enc.batches)-1 && len(batch) != test.size {
				t.Fatalf("n=%d size=%d: chunk %d has %d records, want %d", test.n, test.size, i, len(batch), test.size)
			}
			for _, r := range batch {
				if r["id"] != fmt.Sprintf("%d", total) {
					t.Fatalf("n=%d size=%d: record order broken at %d: %v", test.n, test.size, total, r)
				}
				total++
			}
		}
		if total != test.n {
			t.Fatalf("n=%d size=%d: concatenated %d records, want %d", test.n, test.size, total, test.n)
		}
	}
}

func TestWriterNaming(t *testing.T) {
	enc := &captureEncoder{}
	dir := t.TempDir()
	w, err := NewWriter(dir, "chicago_reviews", 2, enc)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := w.Add(rec(i)); err != nil {
			t.Fatal(err)
		}
	}
	if _, _, err := w.Close(); err != nil {
		t.Fatal(err)
	}

	exp := []string{
		filepath.Join(dir, "chicago_reviews_chunk_00000.cap"),
		filepath.Join(dir, "chicago_reviews_chunk_00001.cap"),
		filepath.Join(dir, "chicago_reviews_chunk_00002.cap"),
	}
	if len(enc.paths) != len(exp) {
		t.Fatalf("expected %d chunk files, got %v", len(exp), enc.paths)
	}
	for i := range exp {
		if enc.paths[i] != exp[i] {
			t.Fatalf("chunk %d: expected %s, got %s", i, exp[i], enc.paths[i])
		}
	}
}

func TestWriterRejectsBadSize(t *testing.T) {
	if _, err := NewWriter(t.TempDir(), "p", 0, &captureEncoder{}); err == nil {
		t.Fatal("expected error for chunk size 0")
	}
}

func TestExistingAndFiles(t *testing.T) {
	dir := t.TempDir()

	ok, n, err := Existing(dir, "p")
	if err != nil {
		t.Fatal(err)
	}
	if ok || n != 0 {
		t.Fatalf("empty dir: expected no chunks, got ok=%v n=%d", ok, n)
	}

	enc := &captureEncoder{touch: true}
	if _, err := WriteAll(dir, "p", 2, enc, []Record{rec(0), rec(1), rec(2)}); err != nil {
		t.Fatal(err)
	}

	ok, n, err = Existing(dir, "p")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || n != 2 {
		t.Fatalf("expected 2 existing chunks, got ok=%v n=%d", ok, n)
	}

	// Unrelated prefixes don't count.
	ok, _, err = Existing(dir, "other")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("prefix must scope the existence check")
	}

	files, err := Files(dir, "p")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "p_chunk_00000.cap" || filepath.Base(files[1]) != "p_chunk_00001.cap" {
		t.Fatalf("unexpected file listing: %v", files)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := Manifest{
		Source:      "/data/reviews.json",
		SourceBytes: 12345,
		Prefix:      "p",
		ChunkSize:   100000,
		Chunks:      3,
		Records:     240000,
		FinishedAt:  1700000000,
	}
	if err := WriteManifest(dir, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadManifest(dir, "p")
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("manifest round trip: expected %+v, got %+v", in, out)
	}
}
