package device_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/katalvlaran/manycore/device"
)

func mustDevice(t *testing.T, opts ...device.Option) *device.Device {
	t.Helper()
	d, err := device.New(opts...)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}

	return d
}

// TestLaunch_Validation verifies geometry and arena checks happen before any
// lane runs.
func TestLaunch_Validation(t *testing.T) {
	d := mustDevice(t, device.WithMaxLanes(8), device.WithMaxClusters(4))
	ran := int32(0)
	k := func(*device.Lane) { atomic.AddInt32(&ran, 1) }

	if err := d.Launch(1, 1, 0, nil); !errors.Is(err, device.ErrNilKernel) {
		t.Errorf("nil kernel: want ErrNilKernel, got %v", err)
	}
	if err := d.Launch(0, 1, 0, k); !errors.Is(err, device.ErrBadGeometry) {
		t.Errorf("zero clusters: want ErrBadGeometry, got %v", err)
	}
	if err := d.Launch(1, 0, 0, k); !errors.Is(err, device.ErrBadGeometry) {
		t.Errorf("zero lanes: want ErrBadGeometry, got %v", err)
	}
	if err := d.Launch(5, 1, 0, k); !errors.Is(err, device.ErrBadGeometry) {
		t.Errorf("clusters over cap: want ErrBadGeometry, got %v", err)
	}
	if err := d.Launch(1, 16, 0, k); !errors.Is(err, device.ErrBadGeometry) {
		t.Errorf("lanes over cap: want ErrBadGeometry, got %v", err)
	}
	if err := d.Launch(1, 1, d.SharedWords()+1, k); !errors.Is(err, device.ErrFastMemoryExceeded) {
		t.Errorf("arena over cap: want ErrFastMemoryExceeded, got %v", err)
	}
	if n := atomic.LoadInt32(&ran); n != 0 {
		t.Errorf("kernel ran %d times on failed launches; want 0", n)
	}
}

// TestLaunch_EveryLaneRuns verifies each (cluster, lane) pair executes exactly
// once and GlobalIndex enumerates the launch densely.
func TestLaunch_EveryLaneRuns(t *testing.T) {
	const clusters, lanes = 8, 16
	d := mustDevice(t, device.WithWorkers(3))

	seen := make([]int32, clusters*lanes)
	err := d.Launch(clusters, lanes, 0, func(l *device.Lane) {
		atomic.AddInt32(&seen[l.GlobalIndex()], 1)
	})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("global lane %d ran %d times; want 1", i, n)
		}
	}
}

// TestLaunch_SharedArenaPerCluster verifies lanes of one cluster observe each
// other's writes across a Sync, and clusters do not share arenas.
func TestLaunch_SharedArenaPerCluster(t *testing.T) {
	const clusters, lanes = 4, 8
	d := mustDevice(t)

	sums := make([]int32, clusters)
	err := d.Launch(clusters, lanes, lanes, func(l *device.Lane) {
		// Each lane deposits a cluster-tagged value, then all lanes meet at
		// the barrier before lane 0 folds the arena.
		l.Shared[l.Index] = device.Word(l.Cluster + 1)
		l.Sync()
		if l.Index == 0 {
			var sum device.Word
			for _, w := range l.Shared {
				sum += w
			}
			atomic.StoreInt32(&sums[l.Cluster], int32(sum))
		}
	})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	for c, sum := range sums {
		if want := int32(lanes * (c + 1)); sum != want {
			t.Errorf("cluster %d arena sum = %d; want %d", c, sum, want)
		}
	}
}

// TestLaunch_BarrierPhases verifies the barrier is reusable across many
// phases without losing arrivals.
func TestLaunch_BarrierPhases(t *testing.T) {
	const lanes, phases = 16, 50
	d := mustDevice(t)

	var bad int32
	err := d.Launch(1, lanes, 1, func(l *device.Lane) {
		for p := 0; p < phases; p++ {
			if l.Index == 0 {
				l.Shared[0] = device.Word(p)
			}
			l.Sync()
			if l.Shared[0] != device.Word(p) {
				atomic.AddInt32(&bad, 1)
			}
			l.Sync()
		}
	})
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if bad != 0 {
		t.Errorf("%d lanes observed a stale phase value; want 0", bad)
	}
}

// TestLaunch_Synchronous verifies Launch returns only after all lanes ran.
func TestLaunch_Synchronous(t *testing.T) {
	d := mustDevice(t)
	var done int32
	if err := d.Launch(4, 4, 0, func(*device.Lane) { atomic.AddInt32(&done, 1) }); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if done != 16 {
		t.Errorf("lanes completed before Launch returned = %d; want 16", done)
	}
}
