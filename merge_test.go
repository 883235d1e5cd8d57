package tdk

import "testing"

func TestMergeReviewsFullMatch(t *testing.T) {
	reviews := []Review{{
		ReviewID:   "r1",
		BusinessID: "b1",
		UserID:     "u1",
		Stars:      4,
		Date:       "2013-05-01 10:00:00",
		Text:       "great gumbo",
		Useful:     2,
	}}
	users := UsersByID([]User{{
		UserID:       "u1",
		Name:         "Pat",
		ReviewCount:  12,
		YelpingSince: "2010-01-01",
		AverageStars: 3.7,
	}})
	lat, lng, stars := 29.95, -90.07, 4.5
	businesses := BusinessesByID([]Business{{
		BusinessID:  "b1",
		Name:        "Cafe One",
		City:        "New Orleans",
		State:       "LA",
		Latitude:    &lat,
		Longitude:   &lng,
		Stars:       &stars,
		ReviewCount: 250,
		Categories:  "Restaurants, Cajun/Creole",
	}})

	rows := MergeReviews(reviews, users, businesses)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.ReviewID != "r1" || row.ReviewStars != 4 || row.ReviewText != "great gumbo" {
		t.Fatalf("review fields wrong: %+v", row)
	}
	if row.UserName == nil || *row.UserName != "Pat" {
		t.Fatalf("expected user_name Pat, got %v", row.UserName)
	}
	if row.UserReviewCount == nil || *row.UserReviewCount != 12 {
		t.Fatalf("expected user_review_count 12, got %v", row.UserReviewCount)
	}
	// Collision renames: business name/stars/review_count land in the
	// business_* columns, review-side fields keep their names.
	if row.BusinessName == nil || *row.BusinessName != "Cafe One" {
		t.Fatalf("expected business_name Cafe One, got %v", row.BusinessName)
	}
	if row.BusinessAvgStars == nil || *row.BusinessAvgStars != 4.5 {
		t.Fatalf("expected business_avg_stars 4.5, got %v", row.BusinessAvgStars)
	}
	if row.BusinessTotalReviews == nil || *row.BusinessTotalReviews != 250 {
		t.Fatalf("expected business_total_reviews 250, got %v", row.BusinessTotalReviews)
	}
	if row.Latitude == nil || *row.Latitude != 29.95 {
		t.Fatalf("expected latitude 29.95, got %v", row.Latitude)
	}
}

func TestMergeReviewsNoMatchKeepsReview(t *testing.T) {
	reviews := []Review{{
		ReviewID:   "r9",
		BusinessID: "nope",
		UserID:     "nobody",
		Stars:      1,
		Date:       "2015-02-03",
		Text:       "closed when I arrived",
	}}

	rows := MergeReviews(reviews, UsersByID(nil), BusinessesByID(nil))
	if len(rows) != 1 {
		t.Fatalf("left join dropped the review: got %d rows", len(rows))
	}
	row := rows[0]
	if row.ReviewID != "r9" || row.ReviewText != "closed when I arrived" || row.ReviewStars != 1 {
		t.Fatalf("review fields not intact: %+v", row)
	}
	if row.UserName != nil || row.UserReviewCount != nil || row.UserYelpingSince != nil || row.UserAverageStars != nil {
		t.Fatalf("expected nil user fields, got %+v", row)
	}
	if row.BusinessName != nil || row.City != nil || row.State != nil || row.BusinessAvgStars != nil ||
		row.BusinessTotalReviews != nil || row.Latitude != nil || row.Longitude != nil || row.Categories != nil {
		t.Fatalf("expected nil business fields, got %+v", row)
	}
}

func TestMergeReviewsPartialMatch(t *testing.T) {
	reviews := []Review{{ReviewID: "r2", BusinessID: "b2", UserID: "u2"}}
	users := UsersByID([]User{{UserID: "u2", Name: "Sam"}})

	rows := MergeReviews(reviews, users, BusinessesByID(nil))
	if rows[0].UserName == nil || *rows[0].UserName != "Sam" {
		t.Fatalf("expected matched user side, got %+v", rows[0])
	}
	if rows[0].BusinessName != nil {
		t.Fatalf("expected nil business side, got %+v", rows[0])
	}
}
