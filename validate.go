package tdk

// Minimal required column sets per source type. Only fields stable
// across dataset versions are listed, so validation stays useful when
// upstream adds columns.
var (
	RequiredBusinessColumns = []string{"business_id", "name", "city", "state", "categories"}
	RequiredReviewColumns   = []string{"review_id", "business_id", "user_id", "date", "text", "stars"}
	RequiredUserColumns     = []string{"user_id", "name", "review_count", "yelping_since"}

	RequiredAirbnbReviewColumns  = []string{"listing_id", "date", "comments"}
	RequiredAirbnbListingColumns = []string{"id", "property_type", "room_type", "latitude", "longitude"}
)

// CheckColumns reports whether every required column is present in
// have, and which ones are missing. It never returns an error; the
// caller decides whether a gap is fatal.
func CheckColumns(have []string, required []string) (bool, []string) {
	present := make(map[string]struct{}, len(have))
	for _, col := range have {
		present[col] = struct{}{}
	}
	var missing []string
	for _, col := range required {
		if _, ok := present[col]; !ok {
			missing = append(missing, col)
		}
	}
	return len(missing) == 0, missing
}

// RecordColumns lists the keys of a decoded record, for use with
// CheckColumns.
func RecordColumns(m map[string]interface{}) []string {
	cols := make([]string, 0, len(m))
	for k := range m {
		cols = append(cols, k)
	}
	return cols
}
