package yelp

import (
	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/tourdata/tdk"
)

// StageMerged writes the merged dataset to a single snappy parquet
// file at path, the silver-staging handoff for gold-layer analytics.
func StageMerged(path string, rows []tdk.MergedRow) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	pw, err := writer.NewParquetWriter(fw, new(tdk.MergedRow), 1)
	if err != nil {
		fw.Close()
		return errors.Wrap(err, "creating parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := pw.Write(rows[i]); err != nil {
			fw.Close()
			return errors.Wrapf(err, "writing row %d", i)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return errors.Wrap(err, "finalizing parquet file")
	}
	return errors.Wrapf(fw.Close(), "closing %s", path)
}
