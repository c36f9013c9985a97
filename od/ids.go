// SPDX-License-Identifier: MIT

package od

import (
	"math"
	"strconv"
)

// Less reports whether a sorts before b.
//
// Ordering rules:
//   - both parse as finite numbers: numeric comparison, ties broken
//     lexicographically so that "1" and "1.0" stay distinct but ordered;
//   - exactly one is numeric: the numeric one comes first;
//   - otherwise plain lexicographic comparison.
//
// Integer-coded identifiers ("2" < "10") therefore order the way a numeric
// column would, while free-form names still sort deterministically.
func Less(a, b ID) bool {
	na, aok := numeric(a)
	nb, bok := numeric(b)
	switch {
	case aok && bok:
		if na != nb {
			return na < nb
		}
		return a < b
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

// Compare returns -1, 0 or +1 following Less. Suitable for slices.SortFunc.
func Compare(a, b ID) int {
	switch {
	case a == b:
		return 0
	case Less(a, b):
		return -1
	default:
		return 1
	}
}

func numeric(id ID) (float64, bool) {
	f, err := strconv.ParseFloat(string(id), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
