// Package reduce: built-in reducers for the common aggregations. Each takes
// the per-index contribution as a plain function, so reducing over a slice is
// a one-liner; anything fancier implements Reducer directly.
package reduce

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number bounds the built-in reducers to sized numeric aggregate types.
// Plain int and uint have no fixed binary size and are rejected by the
// default codec at run time; prefer int64/uint64.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum returns a Reducer that adds at(i) for every index.
func Sum[T Number](at func(index int) T) Reducer[T] {
	return sumReducer[T]{at: at}
}

// Product returns a Reducer that multiplies at(i) for every index.
func Product[T Number](at func(index int) T) Reducer[T] {
	return productReducer[T]{at: at}
}

// Min returns a Reducer that minimizes at(i) over every index.
// The identity is T's maximum value (+Inf for floats).
func Min[T Number](at func(index int) T) Reducer[T] {
	return minReducer[T]{at: at}
}

// Max returns a Reducer that maximizes at(i) over every index.
// The identity is T's minimum value (−Inf for floats).
func Max[T Number](at func(index int) T) Reducer[T] {
	return maxReducer[T]{at: at}
}

type sumReducer[T Number] struct {
	at func(int) T
}

func (sumReducer[T]) Identity() T {
	var zero T

	return zero
}

func (r sumReducer[T]) Apply(i int, acc T) T { return acc + r.at(i) }

func (sumReducer[T]) Combine(a, b T) T { return a + b }

type productReducer[T Number] struct {
	at func(int) T
}

func (productReducer[T]) Identity() T { return T(1) }

func (r productReducer[T]) Apply(i int, acc T) T { return acc * r.at(i) }

func (productReducer[T]) Combine(a, b T) T { return a * b }

type minReducer[T Number] struct {
	at func(int) T
}

func (minReducer[T]) Identity() T { return maxOf[T]() }

func (r minReducer[T]) Apply(i int, acc T) T {
	if v := r.at(i); v < acc {
		return v
	}

	return acc
}

func (minReducer[T]) Combine(a, b T) T {
	if a < b {
		return a
	}

	return b
}

type maxReducer[T Number] struct {
	at func(int) T
}

func (maxReducer[T]) Identity() T { return minOf[T]() }

func (r maxReducer[T]) Apply(i int, acc T) T {
	if v := r.at(i); v > acc {
		return v
	}

	return acc
}

func (maxReducer[T]) Combine(a, b T) T {
	if a > b {
		return a
	}

	return b
}

// maxOf returns the largest value of T (+Inf for floats).
func maxOf[T Number]() T {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int8:
		v := int64(math.MaxInt8)
		return T(v)
	case reflect.Int16:
		v := int64(math.MaxInt16)
		return T(v)
	case reflect.Int32:
		v := int64(math.MaxInt32)
		return T(v)
	case reflect.Int, reflect.Int64:
		v := int64(math.MaxInt64)
		return T(v)
	case reflect.Uint8:
		v := uint64(math.MaxUint8)
		return T(v)
	case reflect.Uint16:
		v := uint64(math.MaxUint16)
		return T(v)
	case reflect.Uint32:
		v := uint64(math.MaxUint32)
		return T(v)
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		v := uint64(math.MaxUint64)
		return T(v)
	case reflect.Float32, reflect.Float64:
		return T(math.Inf(1))
	}

	return zero
}

// minOf returns the smallest value of T (−Inf for floats, 0 for unsigned).
func minOf[T Number]() T {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int8:
		v := int64(math.MinInt8)
		return T(v)
	case reflect.Int16:
		v := int64(math.MinInt16)
		return T(v)
	case reflect.Int32:
		v := int64(math.MinInt32)
		return T(v)
	case reflect.Int, reflect.Int64:
		v := int64(math.MinInt64)
		return T(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return zero
	case reflect.Float32, reflect.Float64:
		return T(math.Inf(-1))
	}

	return zero
}
