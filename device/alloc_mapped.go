// Package device: mmap-backed allocator. Buffers live in anonymous mappings
// outside the Go heap, mirroring device-global memory that is not subject to
// the collector; every buffer must be returned with Free (or Close).
package device

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// MappedAllocator satisfies Allocator with anonymous memory mappings.
// Construct with NewMappedAllocator; the zero value is not usable.
type MappedAllocator struct {
	mu      sync.Mutex
	regions map[*Word]mmap.MMap
}

// NewMappedAllocator returns an empty mmap-backed allocator.
func NewMappedAllocator() *MappedAllocator {
	return &MappedAllocator{regions: make(map[*Word]mmap.MMap)}
}

// Alloc maps a fresh anonymous region of words Words. The kernel hands out
// zeroed pages, satisfying the Allocator zeroing contract.
func (a *MappedAllocator) Alloc(words int) ([]Word, error) {
	if words < 0 {
		return nil, ErrBadAllocSize
	}
	if words == 0 {
		return []Word{}, nil
	}

	region, err := mmap.MapRegion(nil, words*WordBytes, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("device: anonymous mapping failed: %w", err)
	}

	buf := unsafe.Slice((*Word)(unsafe.Pointer(&region[0])), words)

	a.mu.Lock()
	a.regions[&buf[0]] = region
	a.mu.Unlock()

	return buf, nil
}

// Free unmaps a buffer previously returned by Alloc.
// Returns ErrUnknownBuffer for foreign or already-freed buffers.
func (a *MappedAllocator) Free(buf []Word) error {
	if len(buf) == 0 {
		return nil
	}

	a.mu.Lock()
	region, ok := a.regions[&buf[0]]
	if ok {
		delete(a.regions, &buf[0])
	}
	a.mu.Unlock()

	if !ok {
		return ErrUnknownBuffer
	}
	if err := region.Unmap(); err != nil {
		return fmt.Errorf("device: unmap failed: %w", err)
	}

	return nil
}

// Close unmaps every region still outstanding. The allocator stays usable;
// buffers handed out before Close become invalid.
func (a *MappedAllocator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var firstErr error
	for key, region := range a.regions {
		if err := region.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("device: unmap failed: %w", err)
		}
		delete(a.regions, key)
	}

	return firstErr
}
