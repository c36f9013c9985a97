// SPDX-License-Identifier: MIT

package odsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/spatialacc/od"
)

// ReadCSV decodes a CSV OD table. The first row is a header naming at least
// the five Columns (case-insensitive, any order); other columns are ignored.
// Cells are trimmed; numeric cells parse as float64.
//
// Errors:
//   - ErrMissingColumn when a required column is absent.
//   - ErrBadValue (with 1-based line and column name) for unparsable numbers.
func ReadCSV(r io.Reader) ([]od.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: header: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: header: %w", err)
	}
	pos, err := columnPositions(header)
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	var (
		out  []od.Record
		row  []string
		line = 1
	)
	for {
		row, err = cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		rec, err := parseRow(row, pos)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		out = append(out, rec)
	}

	return out, nil
}

// WriteCSV encodes records with the canonical header.
func WriteCSV(w io.Writer, records []od.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{
			string(r.Origin),
			string(r.Destination),
			strconv.FormatFloat(r.TravelCost, 'g', -1, 64),
			strconv.FormatFloat(r.Demand, 'g', -1, 64),
			strconv.FormatFloat(r.Supply, 'g', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// columnPositions maps each of Columns to its index in header.
func columnPositions(header []string) ([5]int, error) {
	var pos [5]int
	for i, want := range Columns {
		pos[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), want) {
				pos[i] = j
				break
			}
		}
		if pos[i] < 0 {
			return pos, fmt.Errorf("%s: %w", want, ErrMissingColumn)
		}
	}

	return pos, nil
}

func parseRow(row []string, pos [5]int) (od.Record, error) {
	var nums [3]float64
	for k := 0; k < 3; k++ {
		cell := strings.TrimSpace(row[pos[k+2]])
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return od.Record{}, fmt.Errorf("%s=%q: %w", Columns[k+2], cell, ErrBadValue)
		}
		nums[k] = v
	}

	return od.Record{
		Origin:      od.ID(strings.TrimSpace(row[pos[0]])),
		Destination: od.ID(strings.TrimSpace(row[pos[1]])),
		TravelCost:  nums[0],
		Demand:      nums[1],
		Supply:      nums[2],
	}, nil
}
