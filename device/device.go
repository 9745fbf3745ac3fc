// Package device: Device construction, functional options, and capability
// queries. This file declares the Word machine type, the documented defaults,
// sentinel errors, and the New constructor.
//
// Errors:
//
//	ErrOptionViolation    - an invalid Option was supplied to New.
//	ErrBadGeometry        - cluster/lane counts outside device limits.
//	ErrNilKernel          - Launch was given a nil Kernel.
//	ErrFastMemoryExceeded - requested arena exceeds fast memory per cluster.
package device

import (
	"errors"
	"math/bits"
	"runtime"
	"sync"
)

// Word is the device's machine word. All fast-memory arenas and scratch
// buffers are word-addressed; value types are serialized into whole words.
type Word = uint32

const (
	// WordBytes is the size of one device Word in bytes.
	WordBytes = 4

	// BankCount is the number of fast-memory banks per cluster. Lanes hitting
	// distinct banks proceed in parallel; same-bank access serializes, which
	// is why slot layouts pad away from exact BankCount multiples.
	BankCount = 32
)

// DEFAULTS - single source of truth for zero-value behavior.
const (
	// DefaultSharedMemory is the fast memory per cluster, in bytes.
	DefaultSharedMemory = 48 << 10

	// DefaultMaxLanes is the hard lane cap per cluster. Must be a power of two
	// so tree-shaped intra-cluster algorithms pair lanes exactly.
	DefaultMaxLanes = 512

	// DefaultMaxClusters is the hard cluster cap per launch.
	DefaultMaxClusters = 64
)

// Sentinel errors for device construction and launches.
var (
	// ErrOptionViolation is returned by New when an invalid Option is supplied.
	ErrOptionViolation = errors.New("device: invalid option supplied")

	// ErrBadGeometry is returned by Launch for cluster/lane counts below 1 or
	// above the device caps.
	ErrBadGeometry = errors.New("device: launch geometry outside device limits")

	// ErrNilKernel is returned by Launch when the kernel is nil.
	ErrNilKernel = errors.New("device: nil kernel")

	// ErrFastMemoryExceeded is returned by Launch when the requested arena
	// does not fit in one cluster's fast memory.
	ErrFastMemoryExceeded = errors.New("device: fast memory per cluster exceeded")
)

// Device models one simulated accelerator: its capability limits, the number
// of clusters the host runs concurrently, and its global-memory allocator.
//
// A Device is safe for concurrent use; launches are serialized internally.
type Device struct {
	sharedWords int // fast memory per cluster, in words
	laneCap     int // max lanes per cluster, power of two
	clusterCap  int // max clusters per launch, power of two
	workers     int // clusters simulated concurrently
	alloc       Allocator

	// launchMu serializes launches: one control stream per device, so launch
	// issue order is completion order.
	launchMu sync.Mutex
}

// Option configures Device construction via functional arguments.
// Invalid values are recorded internally and surfaced as ErrOptionViolation
// when New is invoked.
type Option func(*options)

type options struct {
	sharedBytes int
	laneCap     int
	clusterCap  int
	workers     int
	alloc       Allocator

	// internal error recorded during option parsing
	err error
}

func defaultOptions() options {
	return options{
		sharedBytes: DefaultSharedMemory,
		laneCap:     DefaultMaxLanes,
		clusterCap:  DefaultMaxClusters,
		workers:     runtime.NumCPU(),
		alloc:       HeapAllocator{},
	}
}

// WithSharedMemory sets the fast memory per cluster, in bytes.
// Values below WordBytes are an option violation.
func WithSharedMemory(bytes int) Option {
	return func(o *options) {
		if bytes < WordBytes {
			o.err = ErrOptionViolation
			return
		}
		o.sharedBytes = bytes
	}
}

// WithMaxLanes sets the lane cap per cluster. Must be a power of two ≥ 1.
func WithMaxLanes(n int) Option {
	return func(o *options) {
		if n < 1 || n&(n-1) != 0 {
			o.err = ErrOptionViolation
			return
		}
		o.laneCap = n
	}
}

// WithMaxClusters sets the cluster cap per launch. Must be a power of two ≥ 1.
func WithMaxClusters(n int) Option {
	return func(o *options) {
		if n < 1 || n&(n-1) != 0 {
			o.err = ErrOptionViolation
			return
		}
		o.clusterCap = n
	}
}

// WithWorkers sets how many clusters the host simulates concurrently.
// Values below 1 are an option violation.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.err = ErrOptionViolation
			return
		}
		o.workers = n
	}
}

// WithAllocator sets the global-memory allocator backing Alloc/Free.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a == nil {
			o.err = ErrOptionViolation
			return
		}
		o.alloc = a
	}
}

// New constructs a Device, applying any number of functional Options.
// Returns ErrOptionViolation if any option carried an invalid value.
func New(opts ...Option) (*Device, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Device{
		sharedWords: o.sharedBytes / WordBytes,
		laneCap:     o.laneCap,
		clusterCap:  o.clusterCap,
		workers:     o.workers,
		alloc:       o.alloc,
	}, nil
}

// MaxLanesPerCluster reports how many lanes one cluster may run when every
// lane owns a slot of slotWords words of fast memory: the largest power of
// two not exceeding both the lane cap and the number of slots that fit in
// the arena. Returns 0 when not even one slot fits (or slotWords < 1).
func (d *Device) MaxLanesPerCluster(slotWords int) int {
	if slotWords < 1 {
		return 0
	}
	n := d.sharedWords / slotWords
	if n > d.laneCap {
		n = d.laneCap
	}

	return floorPow2(n)
}

// MaxClusterCount reports the maximum number of clusters per launch.
func (d *Device) MaxClusterCount() int {
	return d.clusterCap
}

// SharedWords reports the fast-memory arena capacity per cluster, in words.
func (d *Device) SharedWords() int {
	return d.sharedWords
}

// Alloc acquires a zeroed global-memory buffer of the given word count from
// the device allocator. Host-side only.
func (d *Device) Alloc(words int) ([]Word, error) {
	return d.alloc.Alloc(words)
}

// Free releases a buffer previously returned by Alloc. Host-side only.
func (d *Device) Free(buf []Word) error {
	return d.alloc.Free(buf)
}

// floorPow2 returns the largest power of two ≤ n, or 0 for n < 1.
func floorPow2(n int) int {
	if n < 1 {
		return 0
	}

	return 1 << (bits.Len(uint(n)) - 1)
}
