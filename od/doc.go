// SPDX-License-Identifier: MIT

// Package od holds the origin-destination (OD) input model used by
// accessibility scoring: the long-form Record, identifier ordering, the
// input normalizer that derives unique demand and supply locations, and
// the key index that maps identifiers to dense matrix positions.
//
// A complete OD table carries exactly one Record for every
// (origin, destination) pair. Each origin repeats its demand on every row
// it appears in, and each destination repeats its supply.
//
// Normalize never mutates the records it is given; all derived slices are
// freshly allocated and sorted with Less, so downstream matrices are laid
// out deterministically:
//
//	rows    -> origins in Less order
//	columns -> destinations in Less order
//
// Complexity:
//   - Normalize: O(n log n) for n records (sorting unique keys).
//   - NewIndex:  O(|O| + |D|).
//   - ValidateComplete: O(n) with a |O|·|D| presence bitmap.
package od
