package device

import "sync"

// barrier is a reusable cluster-wide rendezvous for a fixed party count.
// Every lane of the cluster must call await before any lane proceeds past it;
// the barrier then resets for the next phase.
type barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	n     int // party count, fixed at creation
	count int // arrivals in the current phase
	phase int // generation counter, guards against spurious wakeups
}

func newBarrier(n int) *barrier {
	b := &barrier{n: n}
	b.cond = sync.NewCond(&b.mu)

	return b
}

// await blocks until all n parties have arrived in the current phase.
func (b *barrier) await() {
	b.mu.Lock()
	arrived := b.phase
	b.count++
	if b.count == b.n {
		// Last arrival opens the next phase and releases everyone.
		b.count = 0
		b.phase++
		b.cond.Broadcast()
	} else {
		for arrived == b.phase {
			b.cond.Wait()
		}
	}
	b.mu.Unlock()
}
