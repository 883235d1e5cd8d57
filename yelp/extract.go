package yelp

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/ndjson"
)

func newScanSource(path, kind string) (*ndjson.Source, error) {
	return ndjson.NewSource(path, ndjson.WithLabel(kind+"s"))
}

// LoadBusinesses scans the business NDJSON file into typed records.
// The business table is the only one small enough to hold fully in
// memory.
func LoadBusinesses(path string) ([]tdk.Business, error) {
	src, err := newScanSource(path, KindBusiness)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var out []tdk.Business
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, errors.Wrap(err, "scanning businesses")
		}
		out = append(out, tdk.ParseBusiness(rec))
	}
}

// ExtractOptions configures one city extraction run.
type ExtractOptions struct {
	// Businesses is the pre-filtered business table (e.g. the city's
	// restaurants and hotels concatenated); its IDs become the
	// membership set for the review scan.
	Businesses []tdk.Business
	// ReviewFile and UserFile are the raw NDJSON dumps.
	ReviewFile string
	UserFile   string
	// TargetYears keeps only reviews whose date falls in these years.
	// Empty keeps all years.
	TargetYears []int
	// City and State label log output; filtering happened when the
	// caller built Businesses.
	City  string
	State string
}

// ExtractCity runs the full extraction: one streaming pass over the
// review file gated by the business membership set and target years,
// one streaming pass over the user file gated by the user IDs those
// reviews referenced, then the left-join merge and feature
// derivation. Returns the denormalized, feature-complete rows.
func ExtractCity(opts ExtractOptions) ([]tdk.MergedRow, error) {
	businessIDs := tdk.IDSet(opts.Businesses)
	years := make(map[int]struct{}, len(opts.TargetYears))
	for _, y := range opts.TargetYears {
		years[y] = struct{}{}
	}

	log.Printf("extracting %s, %s: %d businesses to track, target years %v",
		opts.City, opts.State, len(businessIDs), opts.TargetYears)

	reviews, userIDs, err := scanReviews(opts.ReviewFile, businessIDs, years)
	if err != nil {
		return nil, errors.Wrap(err, "extracting reviews")
	}
	log.Printf("extracted %d reviews referencing %d users", len(reviews), len(userIDs))

	users, err := scanUsers(opts.UserFile, userIDs)
	if err != nil {
		return nil, errors.Wrap(err, "extracting users")
	}
	log.Printf("extracted %d users", len(users))

	rows := tdk.MergeReviews(reviews, tdk.UsersByID(users), tdk.BusinessesByID(opts.Businesses))
	rows = tdk.DeriveTemporal(rows)
	rows = tdk.DeriveEngagement(rows)
	log.Printf("final dataset: %d rows", len(rows))
	return rows, nil
}

// scanReviews makes one pass over the review file, keeping reviews
// whose business is in the membership set and whose year matches.
// Both gates are O(1) per record. It also collects the user IDs the
// kept reviews reference, for the user scan.
func scanReviews(path string, businessIDs map[string]struct{}, years map[int]struct{}) ([]tdk.Review, map[string]struct{}, error) {
	src, err := newScanSource(path, KindReview)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	var reviews []tdk.Review
	userIDs := make(map[string]struct{})
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return reviews, userIDs, nil
		}
		if err != nil {
			return reviews, userIDs, err
		}
		businessID := tdk.GetString(rec, "business_id")
		if _, ok := businessIDs[businessID]; !ok {
			continue
		}
		if len(years) > 0 {
			year, ok := yearOf(tdk.GetString(rec, "date"))
			if !ok {
				continue
			}
			if _, ok := years[year]; !ok {
				continue
			}
		}
		review := tdk.ParseReview(rec)
		reviews = append(reviews, review)
		if review.UserID != "" {
			userIDs[review.UserID] = struct{}{}
		}
	}
}

// scanUsers makes one pass over the user file, keeping only users
// referenced by the extracted reviews.
func scanUsers(path string, userIDs map[string]struct{}) ([]tdk.User, error) {
	src, err := newScanSource(path, KindUser)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var users []tdk.User
	for {
		rec, err := src.Record()
		if err == io.EOF {
			return users, nil
		}
		if err != nil {
			return users, err
		}
		if _, ok := userIDs[tdk.GetString(rec, "user_id")]; !ok {
			continue
		}
		users = append(users, tdk.ParseUser(rec))
	}
}

// yearOf extracts the year from the raw date string by its leading
// digits ("2013-01-07 ..." -> 2013), mirroring how the extraction
// gates on year without a full date parse.
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
