// Package reduce: fixed-capacity aggregate storage. One slot holds exactly
// one aggregate value, rounded up to whole device words and padded away from
// exact bank-count multiples so that the lanes of a tree combine never stack
// on the same fast-memory bank.
package reduce

import "github.com/katalvlaran/manycore/device"

// Layout describes the word-level shape of one aggregate slot.
type Layout struct {
	// ValueBytes is the aggregate value's natural size.
	ValueBytes int

	// ValueWords is ValueBytes rounded up to whole device words.
	ValueWords int

	// SlotWords is the stride between adjacent slots: ValueWords, plus one
	// pad word iff ValueWords is an exact multiple of device.BankCount.
	SlotWords int
}

// LayoutFor computes the slot layout for an aggregate of valueBytes bytes.
// Returns ErrBadValueSize for sizes below one byte.
func LayoutFor(valueBytes int) (Layout, error) {
	if valueBytes < 1 {
		return Layout{}, ErrBadValueSize
	}

	valueWords := (valueBytes + device.WordBytes - 1) / device.WordBytes
	slotWords := valueWords
	if valueWords%device.BankCount == 0 {
		slotWords++
	}

	return Layout{
		ValueBytes: valueBytes,
		ValueWords: valueWords,
		SlotWords:  slotWords,
	}, nil
}

// slotView is the ownership-scoped typed window over a word arena laid out as
// one aggregate slot per lane. Values are materialized only at load/store
// points; the arena itself stays raw words.
type slotView[V any] struct {
	arena  []device.Word
	layout Layout
	codec  Codec[V]
}

func viewSlots[V any](arena []device.Word, l Layout, c Codec[V]) slotView[V] {
	return slotView[V]{arena: arena, layout: l, codec: c}
}

// words returns the value words of the given lane's slot, excluding padding.
func (s slotView[V]) words(lane int) []device.Word {
	off := lane * s.layout.SlotWords

	return s.arena[off : off+s.layout.ValueWords]
}

// load materializes the lane's aggregate value.
func (s slotView[V]) load(lane int) V {
	return s.codec.Decode(s.words(lane))
}

// store serializes v into the lane's slot.
func (s slotView[V]) store(lane int, v V) {
	s.codec.Encode(v, s.words(lane))
}
