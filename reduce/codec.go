// Package reduce: value⇄word serialization. Codecs run only at cluster
// boundaries (slot commit, tree combine steps, partial export), never inside
// the grid-stride accumulation loop.
package reduce

import (
	"encoding/binary"

	"github.com/katalvlaran/manycore/device"
)

// Codec serializes aggregate values of type V into device words and back.
// Encode and Decode operate on exactly LayoutFor(ValueBytes()).ValueWords
// words. Implementations must be safe for concurrent use by many lanes.
type Codec[V any] interface {
	// ValueBytes reports the fixed encoded size of one value.
	ValueBytes() int

	// Encode serializes v into dst.
	Encode(v V, dst []device.Word)

	// Decode materializes a value from src.
	Decode(src []device.Word) V
}

// CodecFor returns the default codec for V: little-endian encoding/binary
// over the value's fixed size. Returns ErrValueNotFixedSize when V contains
// slices, strings, pointers, or platform-sized int/uint.
func CodecFor[V any]() (Codec[V], error) {
	var zero V
	size := binary.Size(zero)
	if size <= 0 {
		return nil, ErrValueNotFixedSize
	}

	return binaryCodec[V]{size: size}, nil
}

// codecFor resolves the codec for one run: a Reducer that implements
// Codec[V] supplies its own, everything else gets the default.
func codecFor[V any](r Reducer[V]) (Codec[V], error) {
	if c, ok := r.(Codec[V]); ok {
		return c, nil
	}

	return CodecFor[V]()
}

// binaryCodec is the default fixed-size codec. Size was validated by
// CodecFor, so the binary calls below cannot fail.
type binaryCodec[V any] struct {
	size int
}

func (c binaryCodec[V]) ValueBytes() int { return c.size }

func (c binaryCodec[V]) Encode(v V, dst []device.Word) {
	buf := make([]byte, len(dst)*device.WordBytes)
	_, _ = binary.Encode(buf[:c.size], binary.LittleEndian, v)
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(buf[i*device.WordBytes:])
	}
}

func (c binaryCodec[V]) Decode(src []device.Word) V {
	buf := make([]byte, len(src)*device.WordBytes)
	for i, w := range src {
		binary.LittleEndian.PutUint32(buf[i*device.WordBytes:], w)
	}

	var v V
	_, _ = binary.Decode(buf[:c.size], binary.LittleEndian, &v)

	return v
}
