// SPDX-License-Identifier: MIT

package accessibility

import (
	"fmt"

	"github.com/katalvlaran/spatialacc/matrix"
	"github.com/katalvlaran/spatialacc/od"
)

// Assemble scatters balanced pair weights into a dense |O|×|D| matrix F,
// F[OriginPos(o), DestinationPos(d)] = Fij, and applies the undefined-weight
// policy.
//
// Implementation:
//   - Stage 0: idx.CheckCount(len(pairs)); a pair count that cannot fill
//     the grid exactly is ErrIncompleteODMatrix before F is allocated.
//   - Stage 1: allocate F. Unless the policy is UndefinedFail the matrix
//     accepts NaN/±Inf (matrix.WithNoValidateNaNInf).
//   - Stage 2: resolve each pair through idx; a pair seen twice or an
//     unknown key is ErrIncompleteODMatrix.
//   - Stage 3: an undefined Fij is recorded; UndefinedFail returns
//     ErrUndefinedWeight, the other policies write the value as is.
//   - Stage 4: UndefinedZero replaces the recorded cells with 0 through
//     matrix.ReplaceNonFinite; the result is a finite-only Dense.
//
// The layout depends only on the key order of idx, never on pair order.
// The returned undefined pairs are in row-major (origin, destination) order.
//
// Complexity:
//   - Time O(|O|·|D|), Space O(|O|·|D|), with n == |O|·|D| past Stage 0.
func Assemble(pairs []PairWeight, idx *od.Index, policy UndefinedPolicy) (*matrix.Dense, []PairWeight, error) {
	if idx == nil {
		return nil, nil, accessErrorf(opAssemble, od.ErrNilIndex)
	}
	if err := idx.CheckCount(len(pairs)); err != nil {
		return nil, nil, accessErrorf(opAssemble, err)
	}
	rows, cols := idx.Shape()

	var mopts []matrix.Option
	if policy != UndefinedFail {
		mopts = append(mopts, matrix.WithNoValidateNaNInf())
	}
	F, err := matrix.NewDenseWithOptions(rows, cols, mopts...)
	if err != nil {
		return nil, nil, accessErrorf(opAssemble, err)
	}

	seen := make([]bool, rows*cols)
	undefined := make([]*PairWeight, rows*cols)
	var (
		i, j, k, nUndef int
		v               float64
	)
	for k = range pairs {
		i, j, err = idx.Pos(od.Record{Origin: pairs[k].Origin, Destination: pairs[k].Destination})
		if err != nil {
			return nil, nil, accessErrorf(opAssemble, err)
		}
		if seen[i*cols+j] {
			return nil, nil, accessErrorf(opAssemble, fmt.Errorf("duplicate pair (%q, %q): %w",
				pairs[k].Origin, pairs[k].Destination, od.ErrIncompleteODMatrix))
		}
		seen[i*cols+j] = true

		v = pairs[k].Fij
		if !finite(v) {
			if policy == UndefinedFail {
				return nil, nil, accessErrorf(opAssemble, fmt.Errorf("pair (%q, %q) Fij=%v: %w",
					pairs[k].Origin, pairs[k].Destination, v, ErrUndefinedWeight))
			}
			undefined[i*cols+j] = &pairs[k]
			nUndef++
		}
		if err = F.Set(i, j, v); err != nil {
			return nil, nil, accessErrorf(opAssemble, err)
		}
	}

	// len(pairs) == rows*cols with no duplicate: every cell is set.

	if policy == UndefinedZero && nUndef > 0 {
		if F, _, err = matrix.ReplaceNonFinite(F, 0); err != nil {
			return nil, nil, accessErrorf(opAssemble, err)
		}
	}

	var list []PairWeight
	if nUndef > 0 {
		list = make([]PairWeight, 0, nUndef)
		for _, p := range undefined {
			if p != nil {
				list = append(list, *p)
			}
		}
	}

	return F, list, nil
}
