// Package matrix provides the dense numeric storage behind accessibility grids.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Kernels used by the score aggregator: MatVec (M·x) for scores and
//     VecMat (xᵀ·M) for the demand balance check.
//   - ReplaceNonFinite for sanitizing undefined cells before aggregation.
//   - Central validators returning package sentinels (errors.go).
//
// Origin×destination grids are small enough (|O|·|D| cells) that a flat
// slice is enough; all loops run in fixed i→j order so results
// are bit-for-bit reproducible.
package matrix
