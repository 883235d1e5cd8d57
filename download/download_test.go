package download

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

func TestInsideAirbnbURL(t *testing.T) {
	tests := []struct {
		city, snapshot, fileType string
		exp                      string
		expErr                   bool
	}{
		{
			city: "chicago", snapshot: "2025-06-17", fileType: "reviews",
			exp: "https://data.insideairbnb.com/united-states/il/chicago/2025-06-17/data/reviews.csv.gz",
		},
		{
			city: "los_angeles", snapshot: "2025-06-17", fileType: "listings",
			exp: "https://data.insideairbnb.com/united-states/ca/los-angeles/2025-06-17/data/listings.csv.gz",
		},
		{city: "atlantis", snapshot: "2025-06-17", fileType: "reviews", expErr: true},
		{city: "chicago", snapshot: "2025-06-17", fileType: "calendar", expErr: true},
	}
	for i, test := range tests {
		got, err := InsideAirbnbURL(test.city, test.snapshot, test.fileType)
		if test.expErr {
			if err == nil {
				t.Fatalf("test %d: expected error", i)
			}
			continue
		}
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if got != test.exp {
			t.Fatalf("test %d: expected %s, got %s", i, test.exp, got)
		}
	}
}

func TestFetcherDownloadsAndSkips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "payload")
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "reviews.csv.gz")
	f := NewFetcher(Config{Timeout: 2 * time.Second})

	res, err := f.Fetch(srv.URL, dest)
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped || res.Bytes != int64(len("payload")) {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("bytes not written verbatim: %q", data)
	}

	// Second fetch is a skip, even though the server still answers.
	res, err = f.Fetch(srv.URL, dest)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Fatalf("expected skip on existing dest, got %+v", res)
	}
}

func TestFetcherErrorLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "listings.csv.gz")
	f := NewFetcher(Config{Timeout: 2 * time.Second})
	if _, err := f.Fetch(srv.URL, dest); err == nil {
		t.Fatal("expected error on 404")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("failed fetch must not leave dest: %v", err)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv("TDK_AWS_REGION", "us-west-2")
	t.Setenv("TDK_BUCKET", "env-bucket")

	cfg := LoadConfig(Config{Bucket: "explicit-bucket"})
	if cfg.Bucket != "explicit-bucket" {
		t.Fatalf("explicit value must win, got %s", cfg.Bucket)
	}
	if cfg.AWSRegion != "us-west-2" {
		t.Fatalf("env must fill zero fields, got %s", cfg.AWSRegion)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.Timeout)
	}
}

type fakeS3 struct {
	s3iface.S3API
	body string
	keys []string
}

func (f *fakeS3) GetObject(in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, aws.StringValue(in.Key))
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3FetcherFetch(t *testing.T) {
	fake := &fakeS3{body: "yelp data"}
	f := NewS3FetcherWith(fake, Config{Bucket: "research", AWSRegion: "us-east-1"})

	dest := filepath.Join(t.TempDir(), "yelp_academic_dataset_business.json")
	res, err := f.Fetch("yelp/business.json", dest)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bytes != int64(len("yelp data")) {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(fake.keys) != 1 || fake.keys[0] != "yelp/business.json" {
		t.Fatalf("unexpected keys requested: %v", fake.keys)
	}

	res, err = f.Fetch("yelp/business.json", dest)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Skipped {
		t.Fatal("expected skip on existing dest")
	}
	if len(fake.keys) != 1 {
		t.Fatalf("skip must not hit s3, got %v", fake.keys)
	}
}
