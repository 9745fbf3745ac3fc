// Package device: globally addressable scratch memory. This file declares the
// Allocator contract and the default heap-backed implementation.
//
// Errors:
//
//	ErrBadAllocSize  - negative word count requested.
//	ErrUnknownBuffer - Free was given a buffer this allocator did not hand out.
package device

import "errors"

// Sentinel errors for allocators.
var (
	// ErrBadAllocSize is returned when a negative word count is requested.
	ErrBadAllocSize = errors.New("device: negative allocation size")

	// ErrUnknownBuffer is returned by Free for a buffer the allocator does
	// not own (already freed, or allocated elsewhere).
	ErrUnknownBuffer = errors.New("device: buffer not owned by this allocator")
)

// Allocator hands out zeroed, word-addressed global-memory buffers.
// Implementations must be safe for concurrent use. Alloc and Free are
// host-side operations.
type Allocator interface {
	// Alloc returns a zeroed buffer of exactly words Words.
	Alloc(words int) ([]Word, error)

	// Free releases a buffer previously returned by Alloc.
	Free(buf []Word) error
}

// HeapAllocator satisfies Allocator with ordinary Go allocations, leaving
// reclamation to the garbage collector. The zero value is ready to use.
type HeapAllocator struct{}

// Alloc returns a fresh zeroed slice of words Words.
func (HeapAllocator) Alloc(words int) ([]Word, error) {
	if words < 0 {
		return nil, ErrBadAllocSize
	}

	return make([]Word, words), nil
}

// Free is a no-op: the collector reclaims heap buffers.
func (HeapAllocator) Free([]Word) error {
	return nil
}
