// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fingerprint computes deterministic 64-bit digests of replicated
// state.
//
// A fingerprint is a cheap equality proxy exchanged between the server and
// its clients, so it must be identical for equal states across processes,
// builds and platforms. The package therefore uses an explicitly seeded
// xxhash64 instead of any runtime-provided hasher, visits keyed collections in
// ascending key order, and encodes every value with a fixed, width-explicit
// representation.
//
// Every encoded value starts with a one-byte kind tag. Scalars have a fixed
// width, strings are escaped and terminated, and composite values end with an
// end marker, so a sequence of encoded values can be split back in exactly
// one way. Floats are canonical: -0 is written as +0 and every NaN payload as
// the same bits, which keeps the digest in line with == on values. No
// container length is folded into the digest.
package fingerprint

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// DefaultSeed is the seed shared by every server and client of a deployment.
const DefaultSeed uint64 = 1337

// Kind tags. Composite values are closed by tagEnd, which never starts a
// value.
const (
	tagEnd      byte = 0x00
	tagNil      byte = 'n'
	tagBool     byte = 'b'
	tagInt      byte = 'i'
	tagFloat    byte = 'f'
	tagComplex  byte = 'c'
	tagString   byte = 's'
	tagAppender byte = 'a'
	tagPointer  byte = 'p'
	tagList     byte = 'l'
	tagMap      byte = 'm'
	tagStruct   byte = 't'
	tagOpaque   byte = 'x'
)

// Inside a string 0xff is written as 0xff 0x00; the string ends with
// 0xff 0x01.
const (
	escape        byte = 0xff
	escapedEscape byte = 0x00
	stringEnd     byte = 0x01
)

// canonicalNaN is written for every NaN.
const canonicalNaN uint64 = 0x7ff8000000000001

// maxDepth bounds the walk over nested values; cyclic pointers are cut there.
const maxDepth = 64

var appenderType = reflect.TypeFor[Appender]()

// Appender is implemented by values that provide their own canonical
// encoding. AppendFingerprint must append the same bytes for equal values,
// and the bytes must be self-delimiting when the value is nested in another
// one.
type Appender interface {
	AppendFingerprint(b []byte) []byte
}

// Hasher accumulates canonical encodings of values into a seeded xxhash64
// digest. A Hasher is not safe for concurrent use.
type Hasher struct {
	digest *xxhash.Digest
	buf    []byte
}

// New returns a [Hasher] seeded with [DefaultSeed].
func New() *Hasher {
	return NewWithSeed(DefaultSeed)
}

// NewWithSeed returns a [Hasher] seeded with seed.
func NewWithSeed(seed uint64) *Hasher {
	return &Hasher{
		digest: xxhash.NewWithSeed(seed),
		buf:    make([]byte, 0, 64),
	}
}

// Write feeds the canonical encoding of v into the digest.
func (h *Hasher) Write(v any) {
	h.buf = appendValue(h.buf[:0], v)
	_, _ = h.digest.Write(h.buf)
}

// Sum64 returns the digest of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.digest.Sum64()
}

// Entries returns the fingerprint of m using [DefaultSeed].
func Entries[K cmp.Ordered, V any](m map[K]V) uint64 {
	return EntriesWithSeed(DefaultSeed, m)
}

// EntriesWithSeed returns the fingerprint of m: every (key, value) pair is
// written in ascending key order.
func EntriesWithSeed[K cmp.Ordered, V any](seed uint64, m map[K]V) uint64 {
	h := NewWithSeed(seed)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		h.Write(k)
		h.Write(m[k])
	}
	return h.Sum64()
}

func appendValue(b []byte, v any) []byte {
	switch val := v.(type) {
	case nil:
		return append(b, tagNil)
	case Appender:
		return val.AppendFingerprint(append(b, tagAppender))
	case string:
		return appendString(b, val)
	case []byte:
		if val == nil {
			return append(b, tagNil)
		}
		return appendString(b, val)
	case bool:
		return appendBool(b, val)
	case int:
		return appendInt(b, uint64(val))
	case int8:
		return appendInt(b, uint64(val))
	case int16:
		return appendInt(b, uint64(val))
	case int32:
		return appendInt(b, uint64(val))
	case int64:
		return appendInt(b, uint64(val))
	case uint:
		return appendInt(b, uint64(val))
	case uint8:
		return appendInt(b, uint64(val))
	case uint16:
		return appendInt(b, uint64(val))
	case uint32:
		return appendInt(b, uint64(val))
	case uint64:
		return appendInt(b, val)
	case uintptr:
		return appendInt(b, uint64(val))
	case float32:
		return appendFloat(append(b, tagFloat), float64(val))
	case float64:
		return appendFloat(append(b, tagFloat), val)
	default:
		return appendReflect(b, reflect.ValueOf(val), 0)
	}
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, tagBool, 1)
	}
	return append(b, tagBool, 0)
}

func appendInt(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(append(b, tagInt), v)
}

// appendFloat writes the canonical bits of f without a tag.
func appendFloat(b []byte, f float64) []byte {
	bits := math.Float64bits(f)
	switch {
	case f == 0:
		bits = 0
	case math.IsNaN(f):
		bits = canonicalNaN
	}
	return binary.BigEndian.AppendUint64(b, bits)
}

func appendString[T ~string | ~[]byte](b []byte, s T) []byte {
	b = append(b, tagString)
	for i := 0; i < len(s); i++ {
		b = append(b, s[i])
		if s[i] == escape {
			b = append(b, escapedEscape)
		}
	}
	return append(b, escape, stringEnd)
}

// appendReflect encodes values the type switch in appendValue does not
// cover. Unexported struct fields are read through kind accessors, which
// reflect permits.
func appendReflect(b []byte, rv reflect.Value, depth int) []byte {
	if !rv.IsValid() {
		return append(b, tagNil)
	}
	if depth > maxDepth {
		return append(b, tagOpaque)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return append(b, tagNil)
		}
	}

	if rv.Kind() != reflect.Interface && rv.CanInterface() && rv.Type().Implements(appenderType) {
		return rv.Interface().(Appender).AppendFingerprint(append(b, tagAppender))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return appendBool(b, rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return appendInt(b, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return appendInt(b, rv.Uint())
	case reflect.Float32, reflect.Float64:
		return appendFloat(append(b, tagFloat), rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		return appendFloat(appendFloat(append(b, tagComplex), real(c)), imag(c))
	case reflect.String:
		return appendString(b, rv.String())
	case reflect.Pointer:
		return appendReflect(append(b, tagPointer), rv.Elem(), depth+1)
	case reflect.Interface:
		return appendReflect(b, rv.Elem(), depth+1)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return appendString(b, rv.Bytes())
		}
		return appendList(b, rv, depth)
	case reflect.Array:
		return appendList(b, rv, depth)
	case reflect.Struct:
		b = append(b, tagStruct)
		for i := range rv.NumField() {
			b = appendReflect(b, rv.Field(i), depth+1)
		}
		return append(b, tagEnd)
	case reflect.Map:
		return appendMap(b, rv, depth)
	default:
		return append(b, tagOpaque)
	}
}

func appendList(b []byte, rv reflect.Value, depth int) []byte {
	b = append(b, tagList)
	for i := range rv.Len() {
		b = appendReflect(b, rv.Index(i), depth+1)
	}
	return append(b, tagEnd)
}

// appendMap writes entries ordered by their encoded bytes, since nested map
// keys need not be ordered types.
func appendMap(b []byte, rv reflect.Value, depth int) []byte {
	entries := make([][]byte, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entry := appendReflect(nil, iter.Key(), depth+1)
		entries = append(entries, appendReflect(entry, iter.Value(), depth+1))
	}
	slices.SortFunc(entries, bytes.Compare)

	b = append(b, tagMap)
	for _, entry := range entries {
		b = append(b, entry...)
	}
	return append(b, tagEnd)
}
