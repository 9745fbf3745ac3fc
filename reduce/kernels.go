// Package reduce: the two device kernels. Phase 1 distributes the work
// domain across all lanes and folds each cluster to one partial aggregate;
// phase 2 re-loads the per-cluster partials and folds them to the final
// value. Which finalizer each kernel carries is the planner's choice.
package reduce

import "github.com/katalvlaran/manycore/device"

// contributionKernel builds the phase-1 kernel: every lane starts from the
// identity, walks its grid-stride share of [0, workCount), commits its
// aggregate to its fast-memory slot, then joins the tree combine and the
// finalize step.
//
// The grid-stride walk (index, index+totalLanes, …) covers every index in
// [0, workCount) exactly once across all lanes, for any launch shape.
func contributionKernel[V any](
	workCount int,
	r Reducer[V],
	layout Layout,
	codec Codec[V],
	fin finalizer[V],
) device.Kernel {
	return func(l *device.Lane) {
		slots := viewSlots(l.Shared, layout, codec)

		acc := r.Identity()
		stride := l.Lanes * l.Clusters
		for i := l.GlobalIndex(); i < workCount; i += stride {
			acc = r.Apply(i, acc)
		}
		slots.store(l.Index, acc)

		treeCombine(l, slots, r.Combine)
		fin.finalize(l, slots)
	}
}

// partialsKernel builds the phase-2 kernel: a single cluster with one lane
// per phase-1 cluster copies all partial slots from global memory into fast
// memory (lane-strided, so adjacent lanes read adjacent words), then tree
// combines them and finalizes. The combine's own leading barrier orders the
// copy before any cross-slot read.
func partialsKernel[V any](
	partials []device.Word,
	r Reducer[V],
	layout Layout,
	codec Codec[V],
	fin finalizer[V],
) device.Kernel {
	return func(l *device.Lane) {
		n := layout.SlotWords * l.Lanes
		for i := l.Index; i < n; i += l.Lanes {
			l.Shared[i] = partials[i]
		}

		slots := viewSlots(l.Shared, layout, codec)
		treeCombine(l, slots, r.Combine)
		fin.finalize(l, slots)
	}
}
