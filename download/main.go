package download

import (
	"log"

	"github.com/pkg/errors"
)

// Main is the configuration for the fetch subcommand: grab one raw
// dataset file over HTTP or from S3.
type Main struct {
	URL       string `help:"HTTP(S) URL to fetch. Mutually exclusive with key."`
	Key       string `help:"S3 object key to fetch from the configured bucket."`
	Dest      string `help:"Destination file path."`
	Bucket    string `help:"S3 bucket holding the dataset mirror."`
	AWSRegion string `help:"AWS region for the S3 path."`
	UserAgent string `help:"User-Agent header for HTTP fetches."`
}

// NewMain returns a Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run fetches the file.
func (m *Main) Run() error {
	if m.Dest == "" {
		return errors.New("dest is required")
	}
	if (m.URL == "") == (m.Key == "") {
		return errors.New("exactly one of url or key is required")
	}
	cfg := LoadConfig(Config{
		UserAgent: m.UserAgent,
		AWSRegion: m.AWSRegion,
		Bucket:    m.Bucket,
	})

	var res Result
	var err error
	if m.URL != "" {
		res, err = NewFetcher(cfg).Fetch(m.URL, m.Dest)
	} else {
		var f *S3Fetcher
		f, err = NewS3Fetcher(cfg)
		if err != nil {
			return errors.Wrap(err, "creating s3 fetcher")
		}
		res, err = f.Fetch(m.Key, m.Dest)
	}
	if err != nil {
		return errors.Wrap(err, "fetching")
	}
	if res.Skipped {
		log.Printf("[SKIP] %s already exists", m.Dest)
	} else {
		log.Printf("fetched %d bytes to %s", res.Bytes, m.Dest)
	}
	return nil
}
