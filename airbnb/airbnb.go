// Package airbnb prepares InsideAirbnb city exports: download the
// listings and reviews archives, join reviews to their listings and
// stage the merged table as parquet.
package airbnb

import (
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/chunk"
	"github.com/tourdata/tdk/csvgz"
	"github.com/tourdata/tdk/download"
)

// FileTypes are the InsideAirbnb exports a city snapshot carries.
var FileTypes = []string{"listings", "reviews"}

// Download fetches a city snapshot's listings.csv.gz and
// reviews.csv.gz into dir. Files already present are skipped, not
// re-fetched. Returns the destination path per file type.
func Download(f *download.Fetcher, city, snapshot, dir string) (map[string]string, error) {
	dests := make(map[string]string, len(FileTypes))
	for _, fileType := range FileTypes {
		url, err := download.InsideAirbnbURL(city, snapshot, fileType)
		if err != nil {
			return nil, err
		}
		dest := filepath.Join(dir, fileType+".csv.gz")
		res, err := f.Fetch(url, dest)
		if err != nil {
			return nil, errors.Wrapf(err, "downloading %s for %s", fileType, city)
		}
		if res.Skipped {
			log.Printf("[SKIP] %s already downloaded: %s", fileType, dest)
		} else {
			log.Printf("downloaded %s (%d bytes) to %s", fileType, res.Bytes, dest)
		}
		dests[fileType] = dest
	}
	return dests, nil
}

// Merge joins each review to its listing (reviews.listing_id =
// listings.id) and returns the denormalized rows plus the merged
// column order. Reviews with no matching listing are kept with the
// listing columns absent. Column names shared by both files get a
// _review or _listing suffix. years, when non-empty, keeps only
// reviews whose date falls in one of the years.
func Merge(listingsPath, reviewsPath string, years []int) ([]map[string]string, []string, error) {
	listings, listingCols, err := csvgz.ReadAll(listingsPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading listings")
	}
	byID := make(map[string]map[string]string, len(listings))
	for _, l := range listings {
		byID[l["id"]] = l
	}
	log.Printf("indexed %d listings from %s", len(byID), listingsPath)

	src, err := csvgz.NewSource(reviewsPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening reviews")
	}
	defer src.Close()
	reviewCols := src.Columns()

	shared := sharedColumns(reviewCols, listingCols)
	cols := mergedColumns(reviewCols, listingCols, shared)

	yearSet := make(map[int]struct{}, len(years))
	for _, y := range years {
		yearSet[y] = struct{}{}
	}

	var rows []map[string]string
	matched := 0
	for {
		review, err := src.Record()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "scanning reviews")
		}
		if len(yearSet) > 0 {
			year, ok := yearOf(review["date"])
			if !ok {
				continue
			}
			if _, ok := yearSet[year]; !ok {
				continue
			}
		}

		row := make(map[string]string, len(cols))
		for _, col := range reviewCols {
			row[suffixed(col, shared, "_review")] = review[col]
		}
		if listing, ok := byID[review["listing_id"]]; ok {
			matched++
			for _, col := range listingCols {
				row[suffixed(col, shared, "_listing")] = listing[col]
			}
		}
		rows = append(rows, row)
	}
	log.Printf("merged %d reviews (%d with a listing match)", len(rows), matched)
	return rows, cols, nil
}

// sharedColumns returns the column names present in both files.
func sharedColumns(reviewCols, listingCols []string) map[string]struct{} {
	inListings := make(map[string]struct{}, len(listingCols))
	for _, col := range listingCols {
		inListings[col] = struct{}{}
	}
	shared := make(map[string]struct{})
	for _, col := range reviewCols {
		if _, ok := inListings[col]; ok {
			shared[col] = struct{}{}
		}
	}
	return shared
}

func suffixed(col string, shared map[string]struct{}, suffix string) string {
	if _, ok := shared[col]; ok {
		return col + suffix
	}
	return col
}

// mergedColumns is the output column order: review columns first,
// then listing columns, collisions suffixed.
func mergedColumns(reviewCols, listingCols []string, shared map[string]struct{}) []string {
	cols := make([]string, 0, len(reviewCols)+len(listingCols))
	for _, col := range reviewCols {
		cols = append(cols, suffixed(col, shared, "_review"))
	}
	for _, col := range listingCols {
		cols = append(cols, suffixed(col, shared, "_listing"))
	}
	return cols
}

// ValidateStructure checks both header rows against the minimal
// required column sets. Returns overall validity and the missing
// columns per file type.
func ValidateStructure(reviewCols, listingCols []string) (bool, map[string][]string) {
	missing := make(map[string][]string, 2)
	reviewsOK, reviewsMissing := tdk.CheckColumns(reviewCols, tdk.RequiredAirbnbReviewColumns)
	listingsOK, listingsMissing := tdk.CheckColumns(listingCols, tdk.RequiredAirbnbListingColumns)
	missing["reviews"] = reviewsMissing
	missing["listings"] = listingsMissing
	return reviewsOK && listingsOK, missing
}

// Stage writes the merged rows as a single snappy parquet file at
// path. All columns are optional UTF8: CSV values carry no type
// information and the gold layer casts what it needs.
func Stage(path string, rows []map[string]string, cols []string) error {
	fields := make([]chunk.Field, len(cols))
	for i, col := range cols {
		fields[i] = chunk.Field{Name: col, Type: chunk.String}
	}
	recs := make([]chunk.Record, len(rows))
	for i, row := range rows {
		rec := make(chunk.Record, len(row))
		for k, v := range row {
			rec[k] = v
		}
		recs[i] = rec
	}
	if err := chunk.NewParquetEncoder(fields).WriteChunk(path, recs); err != nil {
		return errors.Wrapf(err, "staging %s", path)
	}
	return nil
}

// yearOf extracts the year from a raw date by its leading digits.
func yearOf(date string) (int, bool) {
	head, _, found := strings.Cut(date, "-")
	if !found {
		return 0, false
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return year, true
}
