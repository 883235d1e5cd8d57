package chunk

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// Manifest records what a completed conversion produced. It is an
// audit sidecar only: the Existing skip check never consults it, so a
// stale conversion (source changed after chunking) is still skipped.
type Manifest struct {
	Source      string `json:"source"`
	SourceBytes int64  `json:"sourceBytes"`
	Prefix      string `json:"prefix"`
	ChunkSize   int    `json:"chunkSize"`
	Chunks      int    `json:"chunks"`
	Records     int    `json:"records"`
	FinishedAt  int64  `json:"finishedAt"`
}

func manifestPath(dir, prefix string) string {
	return filepath.Join(dir, prefix+"_manifest.json")
}

// WriteManifest writes the {prefix}_manifest.json sidecar into dir.
func WriteManifest(dir string, m Manifest) error {
	if m.FinishedAt == 0 {
		m.FinishedAt = time.Now().UTC().Unix()
	}
	f, err := os.Create(manifestPath(dir, m.Prefix))
	if err != nil {
		return errors.Wrap(err, "creating manifest")
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&m); err != nil {
		f.Close()
		return errors.Wrap(err, "encoding manifest")
	}
	return errors.Wrap(f.Close(), "closing manifest")
}

// ReadManifest loads the sidecar for prefix from dir.
func ReadManifest(dir, prefix string) (Manifest, error) {
	data, err := os.ReadFile(manifestPath(dir, prefix))
	if err != nil {
		return Manifest{}, errors.Wrap(err, "reading manifest")
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrap(err, "unmarshaling manifest")
	}
	return m, nil
}
