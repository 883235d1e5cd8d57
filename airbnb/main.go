package airbnb

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tourdata/tdk/csvgz"
	"github.com/tourdata/tdk/download"
	"github.com/tourdata/tdk/layout"
	"github.com/tourdata/tdk/report"
)

// Main is the configuration for the airbnb pipeline subcommand:
// download a city snapshot, validate the headers, merge reviews with
// listings and stage the result as parquet.
type Main struct {
	City         string   `help:"InsideAirbnb city: chicago, los_angeles or new_orleans."`
	Snapshot     string   `help:"Snapshot date segment of the InsideAirbnb URL, e.g. 2025-06-17."`
	ProjectRoot  string   `help:"Project root for the data/ tree. Defaults to the .projectroot marker, else the working directory."`
	Years        []string `help:"Years of reviews to keep. Empty keeps all years."`
	SkipValidate bool     `help:"Skip the header validation pass."`
}

// NewMain returns a Main with the project defaults.
func NewMain() *Main {
	return &Main{
		City:     "new_orleans",
		Snapshot: "2025-06-17",
	}
}

// Run executes the pipeline end to end.
func (m *Main) Run() error {
	root := m.ProjectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "getting working directory")
		}
		if found, err := layout.FindProjectRoot(wd); err == nil {
			root = found
		} else {
			root = wd
		}
	}
	dirs, err := layout.Setup(root, "airbnb", m.City)
	if err != nil {
		return errors.Wrap(err, "setting up directories")
	}
	years, err := parseYears(m.Years)
	if err != nil {
		return err
	}

	fetcher := download.NewFetcher(download.LoadConfig(download.Config{}))
	dests, err := Download(fetcher, m.City, m.Snapshot, dirs.BronzeOriginal)
	if err != nil {
		return errors.Wrap(err, "downloading snapshot")
	}

	if !m.SkipValidate {
		reviewCols, listingCols, err := headerColumns(dests["reviews"], dests["listings"])
		if err != nil {
			return err
		}
		ok, missing := ValidateStructure(reviewCols, listingCols)
		if !ok {
			return errors.Errorf("structure validation failed, missing columns: %v", missing)
		}
		log.Printf("structure ok: %d review columns, %d listing columns", len(reviewCols), len(listingCols))
	}

	rows, cols, err := Merge(dests["listings"], dests["reviews"], years)
	if err != nil {
		return errors.Wrap(err, "merging reviews with listings")
	}

	out := filepath.Join(dirs.SilverStaging, m.City+"_reviews_merged.parquet")
	if err := Stage(out, rows, cols); err != nil {
		return err
	}
	log.Printf("staged %d rows to %s", len(rows), out)

	report.FinalSummary(os.Stdout, m.City+" airbnb reviews", out, rows, cols, "date")
	report.StorageSummary(os.Stdout, dirs)
	return nil
}

// headerColumns reads just the header row of each CSV.
func headerColumns(reviewsPath, listingsPath string) ([]string, []string, error) {
	reviewCols, err := headerOf(reviewsPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading reviews header")
	}
	listingCols, err := headerOf(listingsPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading listings header")
	}
	return reviewCols, listingCols, nil
}

func headerOf(path string) ([]string, error) {
	src, err := csvgz.NewSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.Columns(), nil
}

func parseYears(raw []string) ([]int, error) {
	var years []int
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		y, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing year %q", s)
		}
		years = append(years, y)
	}
	return years, nil
}
