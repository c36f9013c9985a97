// SPDX-License-Identifier: MIT

package odsource

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/spatialacc/od"
)

// Encode writes records to w in a stream format (CSV or YAML).
func Encode(w io.Writer, f Format, records []od.Record) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatYAML:
		return WriteYAML(w, records)
	default:
		return fmt.Errorf("encode %q: %w", f, ErrUnsupportedFormat)
	}
}

// Save writes records to path, choosing format and compression from the
// file name the same way Open does (WithFormat, WithCodec and WithTable
// override). SQLite targets are created or appended to; stream targets are
// truncated.
func Save(ctx context.Context, path string, records []od.Record, opts ...Option) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	o, err := resolve(path, opts)
	if err != nil {
		return fmt.Errorf("Save %s: %w", path, err)
	}

	if o.format == FormatSQLite {
		db, err := sql.Open("sqlite3", "file:"+path)
		if err != nil {
			return fmt.Errorf("odsource: open %s: %w", path, err)
		}
		defer db.Close()

		return WriteSQLite(ctx, db, o.table, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("odsource: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("odsource: %w", cerr)
		}
	}()
	w, err := NewWriter(f, o.codec)
	if err != nil {
		return fmt.Errorf("odsource: %s: %w", path, err)
	}
	if err = Encode(w, o.format, records); err != nil {
		return fmt.Errorf("odsource: %s: %w", path, err)
	}

	return w.Close()
}

// resolve applies opts over what the file name of path implies.
func resolve(path string, opts []Option) (options, error) {
	o := options{table: DefaultTable}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	base := strings.ToLower(filepath.Base(path))
	if detected := CodecFromPath(base); detected != CodecNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if o.codec == "" {
			o.codec = detected
		}
	}
	if o.codec == "" {
		o.codec = CodecNone
	}
	if o.format == "" {
		f, err := FormatFromPath(base)
		if err != nil {
			return o, err
		}
		o.format = f
	}

	switch o.format {
	case FormatCSV, FormatYAML:
	case FormatSQLite:
		if o.codec != CodecNone {
			return o, fmt.Errorf("compressed sqlite: %w", ErrUnsupportedFormat)
		}
		if err := validateTable(o.table); err != nil {
			return o, err
		}
	default:
		return o, fmt.Errorf("format %q: %w", o.format, ErrUnsupportedFormat)
	}

	return o, nil
}
