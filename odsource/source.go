// SPDX-License-Identifier: MIT

package odsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/katalvlaran/spatialacc/od"
)

// Column names of the long-form OD table.
const (
	ColOrigin      = "OriginID"
	ColDestination = "DestinationID"
	ColTravelCost  = "TravelCost"
	ColDemand      = "O_Demand"
	ColSupply      = "D_Supply"
)

// Columns lists the required columns in canonical order.
var Columns = []string{ColOrigin, ColDestination, ColTravelCost, ColDemand, ColSupply}

// DefaultTable is the SQLite table read when WithTable is not given.
const DefaultTable = "od"

// Format identifies a decoder.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Source yields the records of one OD table.
type Source interface {
	Records(ctx context.Context) ([]od.Record, error)
}

// Option configures Open and Save.
type Option func(*options)

type options struct {
	table  string
	format Format
	codec  Codec
}

// WithTable selects the SQLite table.
func WithTable(name string) Option { return func(o *options) { o.table = name } }

// WithFormat overrides extension-based format detection.
func WithFormat(f Format) Option { return func(o *options) { o.format = f } }

// WithCodec overrides extension-based compression detection.
func WithCodec(c Codec) Option { return func(o *options) { o.codec = c } }

// Open returns a Source reading path. The file is not touched until
// Records is called.
func Open(path string, opts ...Option) (Source, error) {
	o, err := resolve(path, opts)
	if err != nil {
		return nil, fmt.Errorf("Open %s: %w", path, err)
	}
	if o.format == FormatSQLite {
		return &sqliteSource{path: path, table: o.table}, nil
	}

	return &fileSource{path: path, format: o.format, codec: o.codec}, nil
}

// FormatFromPath maps an (uncompressed) file name to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("extension %q: %w", filepath.Ext(path), ErrUnsupportedFormat)
	}
}

// Decode reads records of a stream format (CSV or YAML) from r.
func Decode(r io.Reader, f Format) ([]od.Record, error) {
	switch f {
	case FormatCSV:
		return ReadCSV(r)
	case FormatYAML:
		return ReadYAML(r)
	default:
		return nil, fmt.Errorf("decode %q: %w", f, ErrUnsupportedFormat)
	}
}

type fileSource struct {
	path   string
	format Format
	codec  Codec
}

func (s *fileSource) Records(ctx context.Context) ([]od.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("odsource: %w", err)
	}
	defer f.Close()

	r, err := NewReader(f, s.codec)
	if err != nil {
		return nil, fmt.Errorf("odsource: %s: %w", s.path, err)
	}
	defer r.Close()

	recs, err := Decode(r, s.format)
	if err != nil {
		return nil, fmt.Errorf("odsource: %s: %w", s.path, err)
	}

	return recs, nil
}

// FromRecords wraps an in-memory table. Records returns a copy.
func FromRecords(records []od.Record) Source { return memSource(slices.Clone(records)) }

type memSource []od.Record

func (m memSource) Records(ctx context.Context) ([]od.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slices.Clone([]od.Record(m)), nil
}
