package tdk

import (
	"sort"
	"strings"
)

// FilterBusinesses returns the businesses satisfying pred, in input
// order.
func FilterBusinesses(businesses []Business, pred func(*Business) bool) []Business {
	var out []Business
	for i := range businesses {
		if pred(&businesses[i]) {
			out = append(out, businesses[i])
		}
	}
	return out
}

// IDSet collects the unique business IDs of the given businesses into
// a set. The set is the membership filter used to gate records during
// a streaming scan: containment tests are O(1) regardless of how many
// businesses matched the city filter.
func IDSet(businesses []Business) map[string]struct{} {
	set := make(map[string]struct{}, len(businesses))
	for i := range businesses {
		set[businesses[i].BusinessID] = struct{}{}
	}
	return set
}

// CityState returns a predicate matching businesses in the given city
// and state exactly.
func CityState(city, state string) func(*Business) bool {
	return func(b *Business) bool {
		return b.City == city && b.State == state
	}
}

// HasCategory returns a predicate matching businesses whose
// comma-separated categories field contains category exactly (after
// trimming whitespace around each entry).
func HasCategory(category string) func(*Business) bool {
	return func(b *Business) bool {
		if b.Categories == "" {
			return false
		}
		for _, cat := range strings.Split(b.Categories, ",") {
			if strings.TrimSpace(cat) == category {
				return true
			}
		}
		return false
	}
}

// And combines predicates; all must match.
func And(preds ...func(*Business) bool) func(*Business) bool {
	return func(b *Business) bool {
		for _, p := range preds {
			if !p(b) {
				return false
			}
		}
		return true
	}
}

// ClassifyEstablishment buckets a business into the coarse
// tourism-analysis types. The categories string is the raw
// comma-separated Yelp field; a missing field classifies as Unknown.
func ClassifyEstablishment(categories string) string {
	if categories == "" {
		return "Unknown"
	}
	lower := strings.ToLower(categories)
	switch {
	case strings.Contains(lower, "hotel") || strings.Contains(lower, "travel"):
		return "Hotels & Travel"
	case strings.Contains(lower, "restaurant") || strings.Contains(lower, "food"):
		return "Restaurants"
	default:
		return "Other"
	}
}

// ClassifyTourismBusiness matches a business's categories against
// named keyword groups using normalized comparison (lowercased,
// trailing 's' stripped). It returns the matched group names in the
// groups' sorted order, each group at most once.
func ClassifyTourismBusiness(categories string, groups map[string][]string) []string {
	if categories == "" {
		return nil
	}
	var inputCats []string
	for _, cat := range strings.Split(categories, ",") {
		inputCats = append(inputCats, normalizeCategory(cat))
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var matched []string
	for _, name := range names {
		keywords := make(map[string]struct{}, len(groups[name]))
		for _, kw := range groups[name] {
			keywords[normalizeCategory(kw)] = struct{}{}
		}
		for _, cat := range inputCats {
			if _, ok := keywords[cat]; ok {
				matched = append(matched, name)
				break
			}
		}
	}
	return matched
}

func normalizeCategory(cat string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(cat)), "s")
}

// CategoryDistribution counts every individual category across the
// given businesses.
func CategoryDistribution(businesses []Business) map[string]int {
	counts := make(map[string]int)
	for i := range businesses {
		if businesses[i].Categories == "" {
			continue
		}
		for _, cat := range strings.Split(businesses[i].Categories, ",") {
			counts[strings.TrimSpace(cat)]++
		}
	}
	return counts
}
