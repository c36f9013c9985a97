// SPDX-License-Identifier: MIT

package od

import (
	"fmt"
	"math"
)

// Index maps origin and destination identifiers to their positions in the
// sorted key sets of a Summary: row index for origins, column index for
// destinations.
//
// AI-Hints:
//   - Matrix assembly scatters by key through OriginPos/DestinationPos, so
//     the layout never depends on the row order of the input table.
type Index struct {
	Origins      []ID
	Destinations []ID
	origin       map[ID]int
	destination  map[ID]int
}

// NewIndex builds the key index of s. Keys keep the sort order of s.
// Complexity: O(|O| + |D|).
func NewIndex(s *Summary) (*Index, error) {
	if s == nil || len(s.Origins) == 0 || len(s.Destinations) == 0 {
		return nil, odErrorf(opNewIndex, ErrEmptyTable)
	}
	idx := &Index{
		Origins:      make([]ID, len(s.Origins)),
		Destinations: make([]ID, len(s.Destinations)),
		origin:       make(map[ID]int, len(s.Origins)),
		destination:  make(map[ID]int, len(s.Destinations)),
	}
	var i int
	for i = range s.Origins {
		idx.Origins[i] = s.Origins[i].ID
		idx.origin[s.Origins[i].ID] = i
	}
	for i = range s.Destinations {
		idx.Destinations[i] = s.Destinations[i].ID
		idx.destination[s.Destinations[i].ID] = i
	}

	return idx, nil
}

// Shape returns (|Origins|, |Destinations|).
func (x *Index) Shape() (rows, cols int) { return len(x.Origins), len(x.Destinations) }

// Cells returns |Origins|·|Destinations|, or false when the product
// overflows int.
func (x *Index) Cells() (int, bool) {
	rows, cols := x.Shape()
	if rows > 0 && cols > math.MaxInt/rows {
		return 0, false
	}

	return rows * cols, true
}

// CheckCount reports ErrIncompleteODMatrix unless n entries can fill the
// grid exactly once. It never allocates, so a sparse table with many keys
// is rejected before any grid exists.
func (x *Index) CheckCount(n int) error {
	rows, cols := x.Shape()
	cells, ok := x.Cells()
	if !ok {
		return fmt.Errorf("%d origins × %d destinations overflow the grid: %w", rows, cols, ErrIncompleteODMatrix)
	}
	if n != cells {
		return fmt.Errorf("%d entries for %d×%d pairs: %w", n, rows, cols, ErrIncompleteODMatrix)
	}

	return nil
}

// OriginPos returns the row position of id.
func (x *Index) OriginPos(id ID) (int, bool) {
	p, ok := x.origin[id]
	return p, ok
}

// DestinationPos returns the column position of id.
func (x *Index) DestinationPos(id ID) (int, bool) {
	p, ok := x.destination[id]
	return p, ok
}

// Pos resolves both coordinates of a record or reports the unknown key.
func (x *Index) Pos(r Record) (row, col int, err error) {
	var ok bool
	if row, ok = x.origin[r.Origin]; !ok {
		return 0, 0, fmt.Errorf("unknown origin %q: %w", r.Origin, ErrIncompleteODMatrix)
	}
	if col, ok = x.destination[r.Destination]; !ok {
		return 0, 0, fmt.Errorf("unknown destination %q: %w", r.Destination, ErrIncompleteODMatrix)
	}

	return row, col, nil
}
