package yelp

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/ndjson"
)

// FileValidation is the structure-check result for one file.
type FileValidation struct {
	Valid   bool
	SizeMB  float64
	Columns int
	Missing []string
	Err     string
}

// ValidateStructure checks that each dataset file carries its
// required minimal column set, sampling the first decoded record of
// each. paths maps record kind (business, review, user) to file path.
// It reports problems in the results rather than failing: a missing
// file is an invalid entry, not an error.
func ValidateStructure(paths map[string]string) (bool, map[string]FileValidation) {
	results := make(map[string]FileValidation, len(paths))
	allValid := true

	for kind, path := range paths {
		required, err := RequiredColumnsFor(kind)
		if err != nil {
			results[kind] = FileValidation{Err: err.Error()}
			allValid = false
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			results[kind] = FileValidation{Err: "file not found"}
			allValid = false
			continue
		}

		recs, err := ndjson.Peek(path, 1)
		if err != nil {
			results[kind] = FileValidation{Err: err.Error()}
			allValid = false
			continue
		}
		if len(recs) == 0 {
			results[kind] = FileValidation{Err: "empty file"}
			allValid = false
			continue
		}

		cols := tdk.RecordColumns(recs[0])
		ok, missing := tdk.CheckColumns(cols, required)
		results[kind] = FileValidation{
			Valid:   ok,
			SizeMB:  float64(info.Size()) / (1 << 20),
			Columns: len(cols),
			Missing: missing,
		}
		if !ok {
			allValid = false
		}
	}
	return allValid, results
}

// ValidateMain is the configuration for the validate subcommand.
type ValidateMain struct {
	BusinessFile string `help:"Path to the business NDJSON file."`
	ReviewFile   string `help:"Path to the review NDJSON file."`
	UserFile     string `help:"Path to the user NDJSON file."`
}

// NewValidateMain returns a ValidateMain with defaults.
func NewValidateMain() *ValidateMain {
	return &ValidateMain{}
}

// Run validates whichever files were given.
func (m *ValidateMain) Run() error {
	paths := make(map[string]string)
	if m.BusinessFile != "" {
		paths[KindBusiness] = m.BusinessFile
	}
	if m.ReviewFile != "" {
		paths[KindReview] = m.ReviewFile
	}
	if m.UserFile != "" {
		paths[KindUser] = m.UserFile
	}
	if len(paths) == 0 {
		return errors.New("at least one of business-file, review-file or user-file is required")
	}
	ok, results := ValidateStructure(paths)
	for kind, v := range results {
		log.Println(ValidationSummary(kind, v))
	}
	if !ok {
		return errors.New("structure validation failed")
	}
	return nil
}

// ValidationSummary renders a validation result for log output.
func ValidationSummary(kind string, v FileValidation) string {
	switch {
	case v.Err != "":
		return fmt.Sprintf("%s: INVALID (%s)", kind, v.Err)
	case !v.Valid:
		return fmt.Sprintf("%s: INVALID, missing columns %v", kind, v.Missing)
	default:
		return fmt.Sprintf("%s: ok, %d columns, %.1f MB", kind, v.Columns, v.SizeMB)
	}
}
