// Package layout owns the on-disk bronze/silver directory convention:
// bronze holds minimally processed data (original download, raw
// conversion, primary filter), silver holds cleaned data staged for
// gold-layer analytics.
package layout

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Dirs is the fixed extraction tree for one dataset (optionally
// scoped to a city).
type Dirs struct {
	BronzeOriginal      string
	BronzeConversion    string
	BronzePrimaryFilter string
	SilverStaging       string
}

// Setup builds and creates the standard tree under projectRoot:
//
//	data/bronze/<dataset>[/<city>]/00_original_download
//	data/bronze/<dataset>[/<city>]/01_raw_conversion
//	data/bronze/<dataset>[/<city>]/02_primary_filter
//	data/silver/<dataset>[/<city>]/staging
func Setup(projectRoot, dataset, city string) (Dirs, error) {
	bronze := filepath.Join(projectRoot, "data", "bronze", dataset)
	silver := filepath.Join(projectRoot, "data", "silver", dataset)
	if city != "" {
		bronze = filepath.Join(bronze, city)
		silver = filepath.Join(silver, city)
	}

	dirs := Dirs{
		BronzeOriginal:      filepath.Join(bronze, "00_original_download"),
		BronzeConversion:    filepath.Join(bronze, "01_raw_conversion"),
		BronzePrimaryFilter: filepath.Join(bronze, "02_primary_filter"),
		SilverStaging:       filepath.Join(silver, "staging"),
	}
	for _, dir := range []string{dirs.BronzeOriginal, dirs.BronzeConversion, dirs.BronzePrimaryFilter, dirs.SilverStaging} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Dirs{}, errors.Wrapf(err, "creating %s", dir)
		}
	}
	return dirs, nil
}

// markerName is the file that marks a checkout as the project root.
const markerName = ".projectroot"

// FindProjectRoot walks up from start (at most ten levels) looking
// for the .projectroot marker file.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(err, "resolving start dir")
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, markerName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.Errorf("no %s marker found above %s", markerName, start)
}

// DirSize totals the size in bytes of all regular files under dir.
// A missing directory counts as zero.
func DirSize(dir string) int64 {
	var total int64
	filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}
