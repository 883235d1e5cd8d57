package tdk

import "time"

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a review-style date field, trying the dataset's
// timestamp layout first and a bare date second. ok is false when the
// value matches neither.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Season maps a month to the fixed three-month buckets:
// 12,1,2 -> Winter; 3,4,5 -> Spring; 6,7,8 -> Summer; 9,10,11 -> Fall.
func Season(month int) string {
	switch month {
	case 12, 1, 2:
		return "Winter"
	case 3, 4, 5:
		return "Spring"
	case 6, 7, 8:
		return "Summer"
	default:
		return "Fall"
	}
}

// DeriveTemporal returns a copy of rows with year, month, quarter,
// day_of_week and season derived from ReviewDate. Day of week uses
// the 0=Monday .. 6=Sunday convention. Rows whose date fails to parse
// keep nil derived fields; the batch never fails on a malformed date.
func DeriveTemporal(rows []MergedRow) []MergedRow {
	out := make([]MergedRow, len(rows))
	copy(out, rows)
	for i := range out {
		t, ok := ParseDate(out[i].ReviewDate)
		if !ok {
			out[i].Year = nil
			out[i].Month = nil
			out[i].Quarter = nil
			out[i].DayOfWeek = nil
			out[i].Season = nil
			continue
		}
		month := int(t.Month())
		out[i].Year = intPtr(int64(t.Year()))
		out[i].Month = intPtr(int64(month))
		out[i].Quarter = intPtr(int64((month-1)/3 + 1))
		out[i].DayOfWeek = intPtr(int64((int(t.Weekday()) + 6) % 7))
		out[i].Season = strPtr(Season(month))
	}
	return out
}

// DeriveEngagement returns a copy of rows with the engagement features
// computed from the useful/funny/cool vote counts:
//
//	high_quality_review  1 when useful >= 10
//	has_engagement       1 when any vote count is positive
//	total_votes          useful + funny + cool
//	engagement_type      which vote kind strictly dominates
//	engagement_level     None / Low (<=3) / Medium (<=9) / High
func DeriveEngagement(rows []MergedRow) []MergedRow {
	out := make([]MergedRow, len(rows))
	copy(out, rows)
	for i := range out {
		r := &out[i]
		r.TotalVotes = r.Useful + r.Funny + r.Cool
		r.HighQualityReview = 0
		if r.Useful >= 10 {
			r.HighQualityReview = 1
		}
		r.HasEngagement = 0
		if r.TotalVotes > 0 {
			r.HasEngagement = 1
		}
		r.EngagementType = engagementType(r.Useful, r.Funny, r.Cool)
		r.EngagementLevel = engagementLevel(r.TotalVotes)
	}
	return out
}

func engagementType(useful, funny, cool int64) string {
	switch {
	case useful+funny+cool == 0:
		return "No Engagement"
	case useful > funny && useful > cool:
		return "Primarily Useful"
	case funny > useful && funny > cool:
		return "Primarily Funny"
	case cool > useful && cool > funny:
		return "Primarily Cool"
	default:
		return "Mixed Engagement"
	}
}

func engagementLevel(totalVotes int64) string {
	switch {
	case totalVotes == 0:
		return "None"
	case totalVotes <= 3:
		return "Low"
	case totalVotes <= 9:
		return "Medium"
	default:
		return "High"
	}
}
