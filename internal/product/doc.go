// Package product computes the product of a half-open integer range in
// parallel.
//
// The range [start, end) is split into exactly threadCount contiguous
// intervals of width ceil((end-start)/threadCount). Each interval is
// multiplied out on its own goroutine, and the partial products are folded in
// ascending interval order once every worker has finished. Folding in a fixed
// order keeps int64 results bit-for-bit reproducible even when the product
// wraps around.
//
// Two partition policies exist. PolicyClamp (the default) clamps every bound
// to end so the product covers exactly [start, end). PolicyOvershoot leaves
// the bounds unclamped, so the last interval may extend past end; this
// reproduces the classic thread-per-chunk exercise solution exactly.
//
// The package also exposes Calculator implementations (parallel int64,
// sequential int64, exact math/big and, with -tags=gmp, GMP) behind a
// CalculatorFactory so that front-ends can run and cross-check several of
// them at once.
package product
