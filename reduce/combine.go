package reduce

import "github.com/katalvlaran/manycore/device"

// treeCombine folds all lane slots of one cluster into slot 0 by a binary
// tree: the span halves each step, every lane below the span combines its
// slot with the slot span lanes away. Goroutine lanes never run in lockstep,
// so a full barrier separates every step; the final zero-span pass leaves all
// lanes synchronized behind the finished slot 0.
//
// Requires l.Lanes to be a power of two, which the capability layer
// guarantees. O(log L) steps, O(L) combine calls.
func treeCombine[V any](l *device.Lane, slots slotView[V], combine func(a, b V) V) {
	for span := l.Lanes; span > 0; {
		span >>= 1
		l.Sync()
		if l.Index < span {
			slots.store(l.Index, combine(slots.load(l.Index), slots.load(l.Index+span)))
		}
	}
}
