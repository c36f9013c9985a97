// SPDX-License-Identifier: MIT

// Package odsource loads OD tables from external storage into od.Record
// slices: CSV and YAML documents, SQLite tables, and in-memory slices.
//
// Open picks the decoder from the file extension:
//
//	*.csv            CSV with a header row
//	*.yaml, *.yml    YAML document with a top-level "records" list
//	*.db, *.sqlite   SQLite database, table "od" unless WithTable is given
//
// A trailing ".zst" (Zstandard) or ".lz4" (LZ4 frame) on a CSV or YAML
// file is decompressed transparently: "costs.csv.zst" is a compressed CSV.
//
// Sources only decode; validation of the table is left to od.Normalize and
// od.ValidateComplete.
package odsource
