package yelp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tourdata/tdk"
)

func writeFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBusinesses(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "business.json",
		`{"business_id":"b1","name":"Cafe Du Monde","city":"New Orleans","state":"LA","stars":4.5,"review_count":9000,"categories":"Restaurants, Cafes"}
{"business_id":"b2","name":"Some Bar","city":"Metairie","state":"LA","stars":3.0,"review_count":12,"categories":"Bars, Nightlife"}
`)
	bs, err := LoadBusinesses(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(bs) != 2 {
		t.Fatalf("expected 2 businesses, got %d", len(bs))
	}
	if bs[0].BusinessID != "b1" || bs[0].City != "New Orleans" {
		t.Fatalf("unexpected first business: %+v", bs[0])
	}
	if bs[0].Stars == nil || *bs[0].Stars != 4.5 {
		t.Fatalf("expected stars 4.5, got %v", bs[0].Stars)
	}
}

func TestExtractCityTargetYears(t *testing.T) {
	dir := t.TempDir()
	reviewFile := writeFixture(t, dir, "review.json",
		`{"review_id":"r1","business_id":"B1","user_id":"u1","stars":5,"date":"2013-01-07 10:30:00","text":"great","useful":12,"funny":0,"cool":1}
{"review_id":"r2","business_id":"B1","user_id":"u2","stars":3,"date":"2015-06-01 09:00:00","text":"meh","useful":0,"funny":0,"cool":0}
{"review_id":"r3","business_id":"B1","user_id":"u1","stars":4,"date":"2015-12-31 23:59:59","text":"fine","useful":2,"funny":1,"cool":0}
{"review_id":"r4","business_id":"B9","user_id":"u3","stars":1,"date":"2013-03-03 12:00:00","text":"wrong business","useful":0,"funny":0,"cool":0}
`)
	userFile := writeFixture(t, dir, "user.json",
		`{"user_id":"u1","name":"Ann","review_count":42,"yelping_since":"2010-04-01","average_stars":4.1}
{"user_id":"u2","name":"Bob","review_count":5,"yelping_since":"2014-02-02","average_stars":3.2}
{"user_id":"u3","name":"Cal","review_count":1,"yelping_since":"2012-01-01","average_stars":1.0}
`)

	rows, err := ExtractCity(ExtractOptions{
		Businesses: []tdk.Business{
			{BusinessID: "B1", Name: "Hotel Monteleone", City: "New Orleans", State: "LA", ReviewCount: 3100},
		},
		ReviewFile:  reviewFile,
		UserFile:    userFile,
		TargetYears: []int{2013},
		City:        "New Orleans",
		State:       "LA",
	})
	if err != nil {
		t.Fatal(err)
	}
	// B1 has reviews in 2013 and 2015; only the 2013 one survives.
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.ReviewID != "r1" {
		t.Fatalf("expected review r1, got %s", row.ReviewID)
	}
	if row.Year == nil || *row.Year != 2013 {
		t.Fatalf("expected year 2013, got %v", row.Year)
	}
	if row.UserName == nil || *row.UserName != "Ann" {
		t.Fatalf("expected user side joined, got %+v", row)
	}
	if row.BusinessName == nil || *row.BusinessName != "Hotel Monteleone" {
		t.Fatalf("expected business side joined, got %+v", row)
	}
	if row.DayOfWeek == nil || *row.DayOfWeek != 0 {
		t.Fatalf("2013-01-07 is a Monday, got day_of_week %v", row.DayOfWeek)
	}
	if row.EngagementLevel != "High" {
		t.Fatalf("13 total votes should be High engagement, got %q", row.EngagementLevel)
	}
}

func TestExtractCityAllYears(t *testing.T) {
	dir := t.TempDir()
	reviewFile := writeFixture(t, dir, "review.json",
		`{"review_id":"r1","business_id":"B1","user_id":"u1","stars":5,"date":"2013-01-07 10:30:00","text":"a","useful":0}
{"review_id":"r2","business_id":"B1","user_id":"u1","stars":3,"date":"2015-06-01 09:00:00","text":"b","useful":0}
`)
	userFile := writeFixture(t, dir, "user.json",
		`{"user_id":"u1","name":"Ann","review_count":42,"yelping_since":"2010-04-01","average_stars":4.1}
`)

	rows, err := ExtractCity(ExtractOptions{
		Businesses: []tdk.Business{{BusinessID: "B1", Name: "B", City: "New Orleans", State: "LA"}},
		ReviewFile: reviewFile,
		UserFile:   userFile,
		City:       "New Orleans",
		State:      "LA",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("empty target years must keep all years, got %d rows", len(rows))
	}
}

func TestYearOf(t *testing.T) {
	tests := []struct {
		date string
		year int
		ok   bool
	}{
		{"2013-01-07 10:30:00", 2013, true},
		{"2016-06-05", 2016, true},
		{"garbage", 0, false},
		{"", 0, false},
		{"ab-cd", 0, false},
	}
	for _, test := range tests {
		year, ok := yearOf(test.date)
		if year != test.year || ok != test.ok {
			t.Fatalf("yearOf(%q) = %d, %v; want %d, %v", test.date, year, ok, test.year, test.ok)
		}
	}
}
