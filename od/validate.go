// SPDX-License-Identifier: MIT

package od

import "fmt"

// ValidateComplete checks that records hold exactly one entry for every
// (origin, destination) pair of idx.
//
// Implementation:
//   - Stage 1: when len(records) differs from |O|·|D| (or the product
//     overflows), firstGap names the first duplicated or missing pair using
//     memory proportional to len(records), never to the grid.
//   - Stage 2: otherwise mark each record's cell in a |O|·|D| bitmap; a cell
//     marked twice is a duplicate. With the count fixed, no duplicate means
//     no missing pair.
//
// Errors:
//   - ErrNilIndex, ErrIncompleteODMatrix (wrapped with the offending pair).
//
// Complexity:
//   - Time O(n), Space O(n).
func ValidateComplete(records []Record, idx *Index) error {
	if idx == nil {
		return odErrorf(opValidateComplete, ErrNilIndex)
	}
	if err := idx.CheckCount(len(records)); err != nil {
		return odErrorf(opValidateComplete, firstGap(records, idx, err))
	}
	rows, cols := idx.Shape()
	seen := make([]bool, rows*cols)

	var (
		i, j, row int
		err       error
	)
	for row = range records {
		if i, j, err = idx.Pos(records[row]); err != nil {
			return odErrorf(opValidateComplete, fmt.Errorf("row %d: %w", row, err))
		}
		if seen[i*cols+j] {
			return odErrorf(opValidateComplete, fmt.Errorf("row %d: duplicate pair (%q, %q): %w",
				row, records[row].Origin, records[row].Destination, ErrIncompleteODMatrix))
		}
		seen[i*cols+j] = true
	}

	return nil
}

// firstGap explains a count mismatch: the first unknown key or duplicate in
// row order, else the first missing pair in row-major grid order. At most
// len(records) cells are present, so the scan for a missing one ends within
// len(records)+1 steps. countErr is returned when neither is found.
func firstGap(records []Record, idx *Index, countErr error) error {
	type cell struct{ i, j int }
	present := make(map[cell]struct{}, len(records))

	var (
		i, j, row int
		err       error
	)
	for row = range records {
		if i, j, err = idx.Pos(records[row]); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		if _, dup := present[cell{i, j}]; dup {
			return fmt.Errorf("row %d: duplicate pair (%q, %q): %w",
				row, records[row].Origin, records[row].Destination, ErrIncompleteODMatrix)
		}
		present[cell{i, j}] = struct{}{}
	}

	rows, cols := idx.Shape()
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if _, ok := present[cell{i, j}]; !ok {
				return fmt.Errorf("missing pair (%q, %q): %w", idx.Origins[i], idx.Destinations[j], ErrIncompleteODMatrix)
			}
		}
	}

	return countErr
}
