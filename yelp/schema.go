// Package yelp contains the Yelp academic dataset pipeline: raw
// NDJSON to chunked columnar conversion, the city extraction scan,
// date-range checks and structure validation.
package yelp

import (
	"github.com/pkg/errors"

	"github.com/tourdata/tdk"
	"github.com/tourdata/tdk/chunk"
)

// Record kinds in the dataset.
const (
	KindBusiness = "business"
	KindReview   = "review"
	KindUser     = "user"
)

var businessFields = []chunk.Field{
	{Name: "business_id", Type: chunk.String},
	{Name: "name", Type: chunk.String},
	{Name: "city", Type: chunk.String},
	{Name: "state", Type: chunk.String},
	{Name: "postal_code", Type: chunk.String},
	{Name: "latitude", Type: chunk.Double},
	{Name: "longitude", Type: chunk.Double},
	{Name: "stars", Type: chunk.Double},
	{Name: "review_count", Type: chunk.Long},
	{Name: "is_open", Type: chunk.Long},
	{Name: "categories", Type: chunk.String},
}

var reviewFields = []chunk.Field{
	{Name: "review_id", Type: chunk.String},
	{Name: "business_id", Type: chunk.String},
	{Name: "user_id", Type: chunk.String},
	{Name: "stars", Type: chunk.Double},
	{Name: "date", Type: chunk.String},
	{Name: "text", Type: chunk.String},
	{Name: "useful", Type: chunk.Long},
	{Name: "funny", Type: chunk.Long},
	{Name: "cool", Type: chunk.Long},
}

var userFields = []chunk.Field{
	{Name: "user_id", Type: chunk.String},
	{Name: "name", Type: chunk.String},
	{Name: "review_count", Type: chunk.Long},
	{Name: "yelping_since", Type: chunk.String},
	{Name: "average_stars", Type: chunk.Double},
}

// FieldsFor returns the chunk schema for a record kind.
func FieldsFor(kind string) ([]chunk.Field, error) {
	switch kind {
	case KindBusiness:
		return businessFields, nil
	case KindReview:
		return reviewFields, nil
	case KindUser:
		return userFields, nil
	default:
		return nil, errors.Errorf("unknown record kind %q, want business, review or user", kind)
	}
}

// RequiredColumnsFor returns the minimal column set for a record kind.
func RequiredColumnsFor(kind string) ([]string, error) {
	switch kind {
	case KindBusiness:
		return tdk.RequiredBusinessColumns, nil
	case KindReview:
		return tdk.RequiredReviewColumns, nil
	case KindUser:
		return tdk.RequiredUserColumns, nil
	default:
		return nil, errors.Errorf("unknown record kind %q", kind)
	}
}
