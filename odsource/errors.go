// SPDX-License-Identifier: MIT

package odsource

import "errors"

var (
	// ErrUnsupportedFormat indicates an unknown extension or a compressed SQLite file.
	ErrUnsupportedFormat = errors.New("odsource: unsupported format")

	// ErrMissingColumn indicates a CSV header or SQLite table lacking a required column.
	ErrMissingColumn = errors.New("odsource: missing column")

	// ErrBadValue indicates a cell that does not parse as a number.
	ErrBadValue = errors.New("odsource: bad value")

	// ErrBadTable indicates a table name that is not a plain SQL identifier.
	ErrBadTable = errors.New("odsource: bad table name")
)
