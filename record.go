package tdk

// Typed record schemas for the Yelp academic dataset. Raw records
// arrive as decoded JSON maps; the Parse* functions project them onto
// these structs. Optional fields fall back to documented defaults
// ("" for strings, 0 for counts) or stay nil where absence is
// meaningful downstream (coordinates, ratings).

// Business is one record from the business file.
type Business struct {
	BusinessID  string
	Name        string
	City        string
	State       string
	PostalCode  string
	Latitude    *float64
	Longitude   *float64
	Stars       *float64
	ReviewCount int64
	IsOpen      *int64
	Categories  string
}

// Review is one record from the review file.
type Review struct {
	ReviewID   string
	BusinessID string
	UserID     string
	Stars      float64
	Date       string
	Text       string
	Useful     int64
	Funny      int64
	Cool       int64
}

// User is one record from the user file.
type User struct {
	UserID       string
	Name         string
	ReviewCount  int64
	YelpingSince string
	AverageStars float64
}

// MergedRow is the denormalized output of joining a review with its
// owning user and business. Pointer fields are nil when the join
// found no matching row on that side, or (for the derived temporal
// fields) when the review date could not be parsed. The parquet tags
// describe the staged silver-layer file.
type MergedRow struct {
	ReviewID    string  `parquet:"name=review_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	BusinessID  string  `parquet:"name=business_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	UserID      string  `parquet:"name=user_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ReviewStars float64 `parquet:"name=review_stars, type=DOUBLE"`
	ReviewDate  string  `parquet:"name=review_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	ReviewText  string  `parquet:"name=review_text, type=BYTE_ARRAY, convertedtype=UTF8"`
	Useful      int64   `parquet:"name=useful, type=INT64"`
	Funny       int64   `parquet:"name=funny, type=INT64"`
	Cool        int64   `parquet:"name=cool, type=INT64"`

	UserName         *string  `parquet:"name=user_name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	UserReviewCount  *int64   `parquet:"name=user_review_count, type=INT64, repetitiontype=OPTIONAL"`
	UserYelpingSince *string  `parquet:"name=user_yelping_since, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	UserAverageStars *float64 `parquet:"name=user_average_stars, type=DOUBLE, repetitiontype=OPTIONAL"`

	BusinessName         *string  `parquet:"name=business_name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	City                 *string  `parquet:"name=city, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	State                *string  `parquet:"name=state, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	PostalCode           *string  `parquet:"name=postal_code, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Latitude             *float64 `parquet:"name=latitude, type=DOUBLE, repetitiontype=OPTIONAL"`
	Longitude            *float64 `parquet:"name=longitude, type=DOUBLE, repetitiontype=OPTIONAL"`
	BusinessAvgStars     *float64 `parquet:"name=business_avg_stars, type=DOUBLE, repetitiontype=OPTIONAL"`
	BusinessTotalReviews *int64   `parquet:"name=business_total_reviews, type=INT64, repetitiontype=OPTIONAL"`
	IsOpen               *int64   `parquet:"name=is_open, type=INT64, repetitiontype=OPTIONAL"`
	Categories           *string  `parquet:"name=categories, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`

	Year      *int64  `parquet:"name=year, type=INT64, repetitiontype=OPTIONAL"`
	Month     *int64  `parquet:"name=month, type=INT64, repetitiontype=OPTIONAL"`
	Quarter   *int64  `parquet:"name=quarter, type=INT64, repetitiontype=OPTIONAL"`
	DayOfWeek *int64  `parquet:"name=day_of_week, type=INT64, repetitiontype=OPTIONAL"`
	Season    *string `parquet:"name=season, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`

	Geohash *string `parquet:"name=geohash, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`

	HighQualityReview int64  `parquet:"name=high_quality_review, type=INT64"`
	HasEngagement     int64  `parquet:"name=has_engagement, type=INT64"`
	TotalVotes        int64  `parquet:"name=total_votes, type=INT64"`
	EngagementType    string `parquet:"name=engagement_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	EngagementLevel   string `parquet:"name=engagement_level, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ParseBusiness projects a decoded JSON record onto a Business.
func ParseBusiness(m map[string]interface{}) Business {
	return Business{
		BusinessID:  GetString(m, "business_id"),
		Name:        GetString(m, "name"),
		City:        GetString(m, "city"),
		State:       GetString(m, "state"),
		PostalCode:  GetString(m, "postal_code"),
		Latitude:    GetFloat(m, "latitude"),
		Longitude:   GetFloat(m, "longitude"),
		Stars:       GetFloat(m, "stars"),
		ReviewCount: GetInt(m, "review_count"),
		IsOpen:      getIntPtr(m, "is_open"),
		Categories:  GetString(m, "categories"),
	}
}

// ParseReview projects a decoded JSON record onto a Review.
func ParseReview(m map[string]interface{}) Review {
	var stars float64
	if f := GetFloat(m, "stars"); f != nil {
		stars = *f
	}
	return Review{
		ReviewID:   GetString(m, "review_id"),
		BusinessID: GetString(m, "business_id"),
		UserID:     GetString(m, "user_id"),
		Stars:      stars,
		Date:       GetString(m, "date"),
		Text:       GetString(m, "text"),
		Useful:     GetInt(m, "useful"),
		Funny:      GetInt(m, "funny"),
		Cool:       GetInt(m, "cool"),
	}
}

// ParseUser projects a decoded JSON record onto a User.
func ParseUser(m map[string]interface{}) User {
	var avg float64
	if f := GetFloat(m, "average_stars"); f != nil {
		avg = *f
	}
	return User{
		UserID:       GetString(m, "user_id"),
		Name:         GetString(m, "name"),
		ReviewCount:  GetInt(m, "review_count"),
		YelpingSince: GetString(m, "yelping_since"),
		AverageStars: avg,
	}
}

// GetString returns the string at key, or "" if the key is absent or
// holds a non-string.
func GetString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// GetFloat returns the number at key, or nil if the key is absent or
// holds a non-number. encoding/json decodes all JSON numbers to
// float64.
func GetFloat(m map[string]interface{}, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

// GetInt returns the number at key truncated to an int64, or 0 if the
// key is absent or holds a non-number.
func GetInt(m map[string]interface{}, key string) int64 {
	if v, ok := m[key].(float64); ok {
		return int64(v)
	}
	return 0
}

func getIntPtr(m map[string]interface{}, key string) *int64 {
	if v, ok := m[key].(float64); ok {
		i := int64(v)
		return &i
	}
	return nil
}
