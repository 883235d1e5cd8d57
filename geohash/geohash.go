// Package geohash stamps a geohash column onto merged rows so the
// gold layer can group reviews by neighborhood-scale cells.
package geohash

import (
	"github.com/mmcloughlin/geohash"

	"github.com/tourdata/tdk"
)

// DefaultPrecision gives ~150m cells, enough to separate venues on
// the same block without splitting a single hotel across cells.
const DefaultPrecision = 7

// Transformer derives a geohash from a row's business coordinates.
type Transformer struct {
	Precision uint
}

// NewTransformer returns a Transformer at DefaultPrecision.
func NewTransformer() *Transformer {
	return &Transformer{Precision: DefaultPrecision}
}

// Apply returns a copy of rows with Geohash set wherever both
// coordinates are present. Rows without coordinates keep a nil
// geohash.
func (t *Transformer) Apply(rows []tdk.MergedRow) []tdk.MergedRow {
	out := make([]tdk.MergedRow, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].Latitude == nil || out[i].Longitude == nil {
			out[i].Geohash = nil
			continue
		}
		h := geohash.EncodeWithPrecision(*out[i].Latitude, *out[i].Longitude, t.Precision)
		out[i].Geohash = &h
	}
	return out
}
