// Package tdk is the Tourism Data Kit. It contains the
// data-preparation pipeline used by the tourism-analytics research
// project to turn raw review datasets (Yelp academic dataset,
// InsideAirbnb snapshots) into staged, analysis-ready files.
//
// The pipeline follows a bronze/silver layering convention on disk
// (see the layout package) and is strictly batch and single-pass:
// every stage is a plain function invoked once per dataset.
//
// 1. Source
//
//	A tdk.Source is the beginning of every pipeline. Sources know how
//	to pull raw records out of the various places datasets live -
//	newline-delimited JSON dumps (ndjson), gzipped CSV exports
//	(csvgz) - and hand them over one record at a time behind a single
//	interface. A Source returns io.EOF when the underlying data is
//	exhausted. It is not the job of the Source to interpret records;
//	that falls to the typed parsers in this package.
//
// 2. Filter & extract
//
//	Extraction scans a large source once, gating each record against
//	a membership set of business IDs built from a city/state/category
//	filter. Matching records are retained; everything else is
//	discarded on the spot, so multi-gigabyte inputs never live in
//	memory.
//
// 3. Chunk
//
//	The chunk package batches record streams into fixed-size groups
//	and persists each group as one compressed columnar file, giving
//	downstream notebooks something they can load piecemeal.
//
// 4. Merge & derive
//
//	MergeReviews denormalizes reviews against their users and
//	businesses with left-join semantics, and the feature derivers add
//	temporal and engagement columns to the merged rows.
package tdk
