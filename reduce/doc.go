// Package reduce computes a single aggregate over a large work domain on a
// simulated many-core device, given a per-element contribution capability and
// an associative, commutative combine operator.
//
// The reduce package provides:
//
//   - Run / RunWith: one-call reductions over [0, workCount) for any Reducer.
//   - Reducer, the capability interface {Identity, Apply, Combine} users
//     implement per aggregation; dispatch is generic, with no per-call
//     indirection in the hot loop.
//   - Built-in reducers Sum, Product, Min, Max over sized numeric types.
//   - Layout, the bank-padded word sizing of one aggregate slot, and Codec,
//     the value⇄word serialization used at cluster boundaries.
//
// Execution follows the classic two-phase scheme: every lane folds its
// grid-stride share of the domain into a private fast-memory slot, each
// cluster tree-combines its slots down to one partial aggregate, and, when
// more than one cluster was launched, a second single-cluster pass combines
// the per-cluster partials and delivers the final value to the caller's
// finalize callback, exactly once.
//
// The combine operator is assumed associative and commutative; the order in
// which contributions meet is deterministic for a fixed launch shape but not
// across different lane/cluster counts, so floating-point results may differ
// in rounding between configurations.
//
// Reductions are not cancellable: a launch either completes or the whole run
// is abandoned. There are no retries; re-invoking Run is safe whenever the
// contribution function is pure.
package reduce
