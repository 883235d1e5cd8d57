package tdk

// UsersByID keys the given users by user ID for the merge lookup.
func UsersByID(users []User) map[string]User {
	m := make(map[string]User, len(users))
	for i := range users {
		m[users[i].UserID] = users[i]
	}
	return m
}

// BusinessesByID keys the given businesses by business ID for the
// merge lookup.
func BusinessesByID(businesses []Business) map[string]Business {
	m := make(map[string]Business, len(businesses))
	for i := range businesses {
		m[businesses[i].BusinessID] = businesses[i]
	}
	return m
}

// MergeReviews denormalizes reviews against their users and
// businesses: review LEFT JOIN user ON user_id, then LEFT JOIN
// business ON business_id. Review rows are never dropped; a missing
// side leaves that side's pointer fields nil. Colliding business
// columns are renamed on the way in (name -> business_name, stars ->
// business_avg_stars, review_count -> business_total_reviews); the
// review-side columns keep their names.
func MergeReviews(reviews []Review, users map[string]User, businesses map[string]Business) []MergedRow {
	rows := make([]MergedRow, 0, len(reviews))
	for i := range reviews {
		rev := &reviews[i]
		row := MergedRow{
			ReviewID:    rev.ReviewID,
			BusinessID:  rev.BusinessID,
			UserID:      rev.UserID,
			ReviewStars: rev.Stars,
			ReviewDate:  rev.Date,
			ReviewText:  rev.Text,
			Useful:      rev.Useful,
			Funny:       rev.Funny,
			Cool:        rev.Cool,
		}
		if u, ok := users[rev.UserID]; ok {
			row.UserName = strPtr(u.Name)
			row.UserReviewCount = intPtr(u.ReviewCount)
			row.UserYelpingSince = strPtr(u.YelpingSince)
			row.UserAverageStars = floatPtr(u.AverageStars)
		}
		if b, ok := businesses[rev.BusinessID]; ok {
			row.BusinessName = strPtr(b.Name)
			row.City = strPtr(b.City)
			row.State = strPtr(b.State)
			row.PostalCode = strPtr(b.PostalCode)
			row.Latitude = b.Latitude
			row.Longitude = b.Longitude
			row.BusinessAvgStars = b.Stars
			row.BusinessTotalReviews = intPtr(b.ReviewCount)
			row.IsOpen = b.IsOpen
			row.Categories = strPtr(b.Categories)
		}
		rows = append(rows, row)
	}
	return rows
}

func strPtr(s string) *string     { return &s }
func intPtr(i int64) *int64       { return &i }
func floatPtr(f float64) *float64 { return &f }
