// Package download fetches raw dataset files. Configuration is
// injected at construction: nothing here reads the environment at
// call time, so a notebook can see exactly which credentials and
// endpoints a fetch will use.
package download

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config carries everything a Fetcher needs. LoadConfig documents the
// precedence: a value set explicitly on Config wins over the
// environment.
type Config struct {
	// Timeout bounds one whole download request.
	Timeout time.Duration
	// UserAgent is sent on HTTP requests.
	UserAgent string
	// AWSRegion and Bucket configure the S3 fetcher.
	AWSRegion string
	Bucket    string
}

// DefaultTimeout matches the original pipeline's 15s request budget.
const DefaultTimeout = 15 * time.Second

// LoadConfig fills the zero fields of cfg from the environment
// (TDK_AWS_REGION, TDK_BUCKET) and defaults. Explicit values are
// never overwritten.
func LoadConfig(cfg Config) Config {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tdk-fetch"
	}
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = os.Getenv("TDK_AWS_REGION")
	}
	if cfg.Bucket == "" {
		cfg.Bucket = os.Getenv("TDK_BUCKET")
	}
	return cfg
}

// Result reports what a fetch did.
type Result struct {
	// Skipped is true when the destination already existed and no
	// request was made.
	Skipped bool
	// Bytes is the size of the file at the destination.
	Bytes int64
}

// Fetcher downloads files over HTTP.
type Fetcher struct {
	cfg    Config
	client *http.Client
}

// NewFetcher builds a Fetcher from cfg.
func NewFetcher(cfg Config) *Fetcher {
	cfg = LoadConfig(cfg)
	return &Fetcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Fetch GETs url into dest. If dest already exists the fetch is
// skipped. Failures are returned as error values; a failed fetch
// never leaves a partial dest file behind.
func (f *Fetcher) Fetch(url, dest string) (Result, error) {
	if info, err := os.Stat(dest); err == nil {
		return Result{Skipped: true, Bytes: info.Size()}, nil
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Result{}, errors.Wrapf(err, "building request for %s", url)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, errors.Wrapf(err, "fetching %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, errors.Errorf("fetching %s: status %s", url, resp.Status)
	}

	tmp := dest + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return Result{}, errors.Wrapf(err, "creating %s", tmp)
	}
	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return Result{}, errors.Wrapf(err, "writing %s", tmp)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return Result{}, errors.Wrapf(err, "renaming to %s", dest)
	}
	return Result{Bytes: n}, nil
}

// insideAirbnbCities maps short city names to the path segments
// data.insideairbnb.com uses.
var insideAirbnbCities = map[string]string{
	"chicago":     "united-states/il/chicago",
	"los_angeles": "united-states/ca/los-angeles",
	"new_orleans": "united-states/la/new-orleans",
}

// InsideAirbnbURL builds the snapshot URL for a city's listings or
// reviews export, e.g.
// https://data.insideairbnb.com/united-states/il/chicago/2025-06-17/data/reviews.csv.gz
func InsideAirbnbURL(city, snapshot, fileType string) (string, error) {
	segment, ok := insideAirbnbCities[city]
	if !ok {
		return "", errors.Errorf("unknown city %q, supported: %s", city, strings.Join(SupportedCities(), ", "))
	}
	if fileType != "listings" && fileType != "reviews" {
		return "", errors.Errorf("unknown file type %q, want listings or reviews", fileType)
	}
	return fmt.Sprintf("https://data.insideairbnb.com/%s/%s/data/%s.csv.gz", segment, snapshot, fileType), nil
}

// SupportedCities lists the recognized InsideAirbnb city names.
func SupportedCities() []string {
	cities := make([]string, 0, len(insideAirbnbCities))
	for city := range insideAirbnbCities {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}
