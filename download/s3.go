package download

import (
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"
)

// S3Fetcher pulls dataset objects from an S3 bucket. The Yelp
// academic dataset is mirrored into a research bucket because the
// upstream distribution sits behind a click-through form.
type S3Fetcher struct {
	cfg Config
	svc s3iface.S3API
}

// NewS3Fetcher builds an S3Fetcher for cfg.Bucket in cfg.AWSRegion.
// AWS credentials come from the SDK's usual chain.
func NewS3Fetcher(cfg Config) (*S3Fetcher, error) {
	cfg = LoadConfig(cfg)
	if cfg.Bucket == "" {
		return nil, errors.New("no bucket configured")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}
	return &S3Fetcher{cfg: cfg, svc: s3.New(sess)}, nil
}

// NewS3FetcherWith is only for tests to inject a fake S3 client.
func NewS3FetcherWith(svc s3iface.S3API, cfg Config) *S3Fetcher {
	return &S3Fetcher{cfg: LoadConfig(cfg), svc: svc}
}

// Fetch downloads s3://{bucket}/{key} into dest, skipping if dest
// already exists.
func (f *S3Fetcher) Fetch(key, dest string) (Result, error) {
	if info, err := os.Stat(dest); err == nil {
		return Result{Skipped: true, Bytes: info.Size()}, nil
	}

	obj, err := f.svc.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(f.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Result{}, errors.Wrapf(err, "getting s3://%s/%s", f.cfg.Bucket, key)
	}
	defer obj.Body.Close()

	tmp := dest + ".partial"
	out, err := os.Create(tmp)
	if err != nil {
		return Result{}, errors.Wrapf(err, "creating %s", tmp)
	}
	n, err := io.Copy(out, obj.Body)
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
