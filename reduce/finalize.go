// Package reduce: finalize strategies. Exactly two exist: deliver the fully
// combined value to the caller's callback, or export the cluster's partial
// aggregate into the global scratch buffer for the second phase. Both run
// strictly after the intra-cluster combine completed.
package reduce

import "github.com/katalvlaran/manycore/device"

// finalizer consumes a cluster's combined aggregate, sitting in slot 0.
type finalizer[V any] interface {
	finalize(l *device.Lane, slots slotView[V])
}

// deliverFinalize invokes the caller's serial callback with the final value.
// Guarded so it fires exactly once per reduction: single cluster, lane 0.
type deliverFinalize[V any] struct {
	sink func(V) error

	// err records the callback's result. Written by the one guarded lane,
	// read by the host after Launch returned.
	err error
}

func (f *deliverFinalize[V]) finalize(l *device.Lane, slots slotView[V]) {
	if l.Clusters == 1 && l.Index == 0 {
		f.err = f.sink(slots.load(0))
	}
}

// storeFinalize exports the cluster's combined aggregate into its own slot of
// the partial-aggregate buffer. All lanes cooperate, striding across the
// value words; clusters own disjoint slots, so there is no contention.
type storeFinalize[V any] struct {
	partials []device.Word
}

func (f *storeFinalize[V]) finalize(l *device.Lane, slots slotView[V]) {
	src := slots.words(0)
	base := l.Cluster * slots.layout.SlotWords
	dst := f.partials[base : base+slots.layout.ValueWords]

	// All lanes rendezvous behind the finished slot 0 before exporting.
	l.Sync()
	for i := l.Index; i < len(dst); i += l.Lanes {
		dst[i] = src[i]
	}
}
