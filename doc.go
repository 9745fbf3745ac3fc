// Package manycore is an in-memory playground for many-core accelerator
// programming: a simulated device of cooperating lane clusters plus a
// two-phase parallel reduction engine built on top of it.
//
// 🚀 What is manycore?
//
//	A small, thread-safe library that brings together:
//		• Device model: clusters × lanes, fast per-cluster memory, barriers
//		• Launch control: synchronous kernel launches on one control stream
//		• Global memory: pluggable scratch allocators (heap or mmap-backed)
//		• Reductions: grid-stride contribution + intra-cluster tree combine
//		• Two-phase aggregation: per-cluster partials folded to one value
//		• Built-in operators: Sum, Product, Min, Max over sized numerics
//
// ✨ Why choose manycore?
//
//   - Beginner-friendly – the accelerator execution model with plain goroutines
//   - Rock-solid guarantees – deterministic coverage, barrier-synchronized phases
//   - Pure Go – no cgo, no GPU required
//   - Extensible – implement one small Reducer interface per aggregation
//
// Under the hood, everything is organized under two subpackages:
//
//	device/ - simulated accelerator: Device, Lane, barriers, allocators, Launch
//	reduce/ - aggregate layout, tree combiner, kernels, finalize sinks, planner
//
// Quick ASCII picture of one reduction:
//
//	 lanes:    [a0][a1][a2][a3] … per-lane aggregates in fast memory
//	 combine:   \  /    \  /
//	            [a01]   [a23]    binary-tree fold, barrier per step
//	              \      /
//	              [a0123]        cluster partial → global scratch → phase 2
//
// Dive into examples/ for end-to-end programs, and reduce/example_test.go for
// runnable snippets.
//
//	go get github.com/katalvlaran/manycore
package manycore
