package yelp

import (
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/geohash"
)

// Main is the configuration for the yelp extraction subcommand: it
// validates the raw files, builds the city/category membership set,
// runs the extraction and stages the merged dataset as parquet.
type Main struct {
	BusinessFile string   `help:"Path to yelp_academic_dataset_business.json."`
	ReviewFile   string   `help:"Path to yelp_academic_dataset_review.json."`
	UserFile     string   `help:"Path to yelp_academic_dataset_user.json."`
	City         string   `help:"City to extract, e.g. 'New Orleans'."`
	State        string   `help:"State code, e.g. 'LA'."`
	Categories   []string `help:"Business categories to keep; a business matching any is tracked."`
	Years        []string `help:"Years to extract, e.g. 2013,2016,2018. Empty keeps all years."`
	OutDir       string   `help:"Silver staging directory for the merged parquet file."`
	Geohash      bool     `help:"Add a geohash column derived from business coordinates."`
	SkipValidate bool     `help:"Skip the structure validation pass over the raw files."`
}

// NewMain returns a Main with the project defaults.
func NewMain() *Main {
	return &Main{
		City:       "New Orleans",
		State:      "LA",
		Categories: []string{"Restaurants", "Hotels & Travel"},
		Years:      []string{"2013", "2016", "2018"},
		Geohash:    true,
	}
}

// Run executes the extraction end to end.
func (m *Main) Run() error {
	if m.BusinessFile == "" || m.ReviewFile == "" || m.UserFile == "" {
		return errors.New("business-file, review-file and user-file are required")
	}
	if m.OutDir == "" {
		return errors.New("out-dir is required")
	}
	years, err := parseYears(m.Years)
	if err != nil {
		return err
	}

	if !m.SkipValidate {
		ok, results := ValidateStructure(map[string]string{
			KindBusiness: m.BusinessFile,
			KindReview:   m.ReviewFile,
			KindUser:     m.UserFile,
		})
		for kind, v := range results {
			log.Println(ValidationSummary(kind, v))
		}
		if !ok {
			return errors.New("structure validation failed; rerun with skip-validate to force")
		}
	}

	businesses, err := LoadBusinesses(m.BusinessFile)
	if err != nil {
		return errors.Wrap(err, "loading businesses")
	}

	// Union of the category filters, all scoped to the city: the
	// original concatenates the restaurant and hotel tables.
	var tracked []tdk.Business
	for _, category := range m.Categories {
		matched := tdk.FilterBusinesses(businesses, tdk.And(tdk.CityState(m.City, m.State), tdk.HasCategory(category)))
		log.Printf("%d businesses match %s in %s, %s", len(matched), category, m.City, m.State)
		tracked = append(tracked, matched...)
	}

	rows, err := ExtractCity(ExtractOptions{
		Businesses:  tracked,
		ReviewFile:  m.ReviewFile,
		UserFile:    m.UserFile,
		TargetYears: years,
		City:        m.City,
		State:       m.State,
	})
	if err != nil {
		return errors.Wrap(err, "extracting city dataset")
	}
	if m.Geohash {
		rows = geohash.NewTransformer().Apply(rows)
	}

	out := filepath.Join(m.OutDir, outName(m.City)+"_merged.parquet")
	if err := StageMerged(out, rows); err != nil {
		return errors.Wrap(err, "staging merged dataset")
	}
	log.Printf("staged %d rows to %s", len(rows), out)
	return nil
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

func outName(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "_")
}
