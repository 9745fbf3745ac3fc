// Package reduce: the launch planner. Decides the launch shape from the work
// size and the device capabilities, and orchestrates the one- or two-phase
// sequence, owning the partial-aggregate scratch buffer for the duration of
// the two-phase case.
package reduce

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/manycore/device"
)

// Run reduces [0, workCount) with r and returns the final aggregate.
// Convenience form of RunWith delivering into a host-visible holder.
//
// Returns the sentinel errors of this package for invalid input or
// configuration, and wrapped allocator errors for scratch failures; in every
// error case no partial state is left behind.
func Run[V any](d *device.Device, workCount int, r Reducer[V], opts ...Option) (V, error) {
	var out V
	err := RunWith(d, workCount, r, func(v V) error {
		out = v

		return nil
	}, opts...)

	return out, err
}

// RunWith reduces [0, workCount) with r and invokes finalize exactly once
// with the final aggregate. finalize runs on a device lane: keep it short and
// serial. An error returned by finalize aborts nothing, since the reduction
// is already complete, but is propagated to the caller after scratch release.
//
// workCount == 0 yields r.Identity().
func RunWith[V any](
	d *device.Device,
	workCount int,
	r Reducer[V],
	finalize func(V) error,
	opts ...Option,
) (err error) {
	if d == nil {
		return ErrDeviceNil
	}
	if r == nil {
		return ErrReducerNil
	}
	if finalize == nil {
		return ErrSinkNil
	}
	if workCount < 0 {
		return ErrNegativeWork
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o.err
	}

	codec, err := codecFor(r)
	if err != nil {
		return err
	}
	layout, err := LayoutFor(codec.ValueBytes())
	if err != nil {
		return err
	}

	// Device capability, optionally clamped down for this run.
	maxLanes := d.MaxLanesPerCluster(layout.SlotWords)
	if maxLanes < 1 {
		return ErrValueTooLarge
	}
	maxLanes = clampPow2(maxLanes, o.maxLanes)
	maxClusters := clampPow2(d.MaxClusterCount(), o.maxClusters)

	deliver := &deliverFinalize[V]{sink: finalize}

	if workCount < maxLanes {
		// Small amount of work: one cluster suffices. Shrink the lane count
		// while half of the lanes would stay idle.
		lanes := maxLanes
		for lanes > 1 && workCount <= lanes>>1 {
			lanes >>= 1
		}

		kernel := contributionKernel(workCount, r, layout, codec, deliver)
		if err = d.Launch(1, lanes, layout.SlotWords*lanes, kernel); err != nil {
			return err
		}

		return deliver.err
	}

	// Large amount of work: per-cluster partial aggregates, then a second
	// single-cluster pass. The cluster count is bounded by the lane budget so
	// that pass can hold one slot per cluster.
	clusters := maxClusters
	if maxLanes < clusters {
		clusters = maxLanes
	}
	for clusters > 1 && workCount <= maxLanes*(clusters>>1) {
		clusters >>= 1
	}

	partials, allocErr := d.Alloc(layout.SlotWords * clusters)
	if allocErr != nil {
		return fmt.Errorf("reduce: partial-aggregate buffer: %w", allocErr)
	}
	defer func() {
		// Released on every exit path, including a finalize error or panic.
		if freeErr := d.Free(partials); freeErr != nil && err == nil {
			err = fmt.Errorf("reduce: release partial-aggregate buffer: %w", freeErr)
		}
	}()

	store := &storeFinalize[V]{partials: partials}
	phase1 := contributionKernel(workCount, r, layout, codec, store)
	if err = d.Launch(clusters, maxLanes, layout.SlotWords*maxLanes, phase1); err != nil {
		return err
	}

	phase2 := partialsKernel(partials, r, layout, codec, deliver)
	if err = d.Launch(1, clusters, layout.SlotWords*clusters, phase2); err != nil {
		return err
	}

	return deliver.err
}

// clampPow2 applies a caller's limit to a device capability: the result is
// the largest power of two ≤ both, never below 1. limit == 0 means no
// override.
func clampPow2(capability, limit int) int {
	n := capability
	if limit > 0 && limit < n {
		n = limit
	}
	if n < 1 {
		return 1
	}

	return 1 << (bits.Len(uint(n)) - 1)
}
