// Package device: kernel launches. This file declares Lane, Kernel, and the
// synchronous Device.Launch entry point that maps clusters onto a bounded set
// of host workers and lanes onto goroutines.
package device

import "sync"

// Lane is the execution context of one lane inside a running kernel.
// Cluster and Index identify the lane; Shared is the cluster's fast-memory
// arena, visible to all lanes of the same cluster only.
type Lane struct {
	// Cluster is this lane's cluster index in [0, Clusters).
	Cluster int

	// Index is this lane's index within the cluster, in [0, Lanes).
	Index int

	// Lanes is the number of lanes per cluster for this launch.
	Lanes int

	// Clusters is the number of clusters for this launch.
	Clusters int

	// Shared is the cluster's fast-memory arena, zeroed at launch.
	Shared []Word

	bar *barrier
}

// GlobalIndex returns the lane's flat index across the whole launch:
// Cluster*Lanes + Index.
func (l *Lane) GlobalIndex() int {
	return l.Cluster*l.Lanes + l.Index
}

// Sync blocks until every lane of this cluster reached the same barrier.
// Every lane of the cluster must execute the call: placing Sync inside a
// lane-divergent branch deadlocks the cluster, exactly as on hardware.
func (l *Lane) Sync() {
	l.bar.await()
}

// Kernel is the body executed once per lane of a launch.
type Kernel func(*Lane)

// Launch runs k over clusters × lanes lanes, giving each cluster a fresh
// zeroed arena of sharedWords words. The call is synchronous: it returns only
// after every lane of every cluster returned. Launches on one Device are
// serialized, so a second Launch begins strictly after the first completed;
// this launch ordering is the only cross-launch synchronization the device
// offers. Host-side only.
//
// Returns ErrNilKernel, ErrBadGeometry, or ErrFastMemoryExceeded for invalid
// requests; no lane runs in that case.
func (d *Device) Launch(clusters, lanes, sharedWords int, k Kernel) error {
	if k == nil {
		return ErrNilKernel
	}
	if clusters < 1 || clusters > d.clusterCap || lanes < 1 || lanes > d.laneCap {
		return ErrBadGeometry
	}
	if sharedWords < 0 || sharedWords > d.sharedWords {
		return ErrFastMemoryExceeded
	}

	d.launchMu.Lock()
	defer d.launchMu.Unlock()

	// Clusters are independent: run up to d.workers of them at a time, each
	// spawning its own lane goroutines.
	sem := make(chan struct{}, d.workers)
	var wg sync.WaitGroup
	wg.Add(clusters)
	for c := 0; c < clusters; c++ {
		sem <- struct{}{}
		go func(cluster int) {
			defer func() { <-sem; wg.Done() }()
			d.runCluster(cluster, clusters, lanes, sharedWords, k)
		}(c)
	}
	wg.Wait()

	return nil
}

// runCluster executes all lanes of one cluster and waits for them.
func (d *Device) runCluster(cluster, clusters, lanes, sharedWords int, k Kernel) {
	arena := make([]Word, sharedWords)
	bar := newBarrier(lanes)

	var wg sync.WaitGroup
	wg.Add(lanes)
	for i := 0; i < lanes; i++ {
		go func(lane int) {
			defer wg.Done()
			k(&Lane{
				Cluster:  cluster,
				Index:    lane,
				Lanes:    lanes,
				Clusters: clusters,
				Shared:   arena,
				bar:      bar,
			})
		}(i)
	}
	wg.Wait()
}
