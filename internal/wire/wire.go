// Package wire computes protobuf wire-format metadata for schema fields:
// wire types, tags, tag byte lengths and fixed encoded sizes. Generated
// Objective-C code bakes these numbers in as literals, so every function
// here must reproduce the standard wire format exactly.
package wire

import (
	"fmt"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
)

// Type is a protobuf wire type, the low three bits of a field tag.
type Type uint32

const (
	TypeVarint     Type = 0
	TypeFixed64    Type = 1
	TypeBytes      Type = 2
	TypeStartGroup Type = 3
	TypeEndGroup   Type = 4
	TypeFixed32    Type = 5
)

// Fixed encoded sizes in bytes for the fixed-width kinds.
const (
	Fixed32Size  = 4
	Fixed64Size  = 8
	SFixed32Size = 4
	SFixed64Size = 8
	FloatSize    = 4
	DoubleSize   = 8
	BoolSize     = 1
)

// MaxVarintBytes is the longest encoding of a 64-bit varint.
const MaxVarintBytes = 10

// TypeForKind maps a field kind to the wire type used when the value is
// written with its own tag (i.e. not packed).
func TypeForKind(k schema.Kind) Type {
	switch k {
	case schema.KindInt32, schema.KindInt64,
		schema.KindUint32, schema.KindUint64,
		schema.KindSint32, schema.KindSint64,
		schema.KindBool, schema.KindEnum:
		return TypeVarint
	case schema.KindFixed64, schema.KindSfixed64, schema.KindDouble:
		return TypeFixed64
	case schema.KindString, schema.KindBytes, schema.KindMessage:
		return TypeBytes
	case schema.KindGroup:
		return TypeStartGroup
	case schema.KindFixed32, schema.KindSfixed32, schema.KindFloat:
		return TypeFixed32
	}
	// A kind missing here means the generator itself is incomplete; emitting
	// a wrong tag would corrupt every message on the wire.
	panic(fmt.Sprintf("wire: no wire type for field kind %v", k))
}

// TypeForField returns the wire type used for one occurrence of the field,
// honoring packed framing: a packed repeated field is written as a single
// length-delimited blob regardless of its element kind.
func TypeForField(f *schema.Field) Type {
	if f.IsPacked() {
		return TypeBytes
	}
	return TypeForKind(f.Kind)
}

// MakeTag combines a field number and wire type into the tag value that
// prefixes every encoded occurrence.
func MakeTag(number int32, t Type) uint32 {
	return uint32(number)<<3 | uint32(t)
}

// FieldTag is the tag registered for the field in parse dispatch and
// written before each occurrence during serialization.
func FieldTag(f *schema.Field) uint32 {
	return MakeTag(f.Number, TypeForField(f))
}

// VarintSize returns the number of bytes the value occupies as a varint.
func VarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// TagSize returns the encoded size of the field's tag. Group fields pay for
// both the start-group and end-group tags.
func TagSize(number int32, k schema.Kind) int {
	n := VarintSize(uint64(MakeTag(number, TypeVarint)))
	if k == schema.KindGroup {
		return n * 2
	}
	return n
}

// FixedSize returns the encoded byte size for fixed-width kinds and -1 for
// kinds with variable-length encodings.
func FixedSize(k schema.Kind) int {
	switch k {
	case schema.KindFixed32:
		return Fixed32Size
	case schema.KindFixed64:
		return Fixed64Size
	case schema.KindSfixed32:
		return SFixed32Size
	case schema.KindSfixed64:
		return SFixed64Size
	case schema.KindFloat:
		return FloatSize
	case schema.KindDouble:
		return DoubleSize
	case schema.KindBool:
		return BoolSize
	case schema.KindInt32, schema.KindInt64,
		schema.KindUint32, schema.KindUint64,
		schema.KindSint32, schema.KindSint64,
		schema.KindEnum, schema.KindString, schema.KindBytes,
		schema.KindGroup, schema.KindMessage:
		return -1
	}
	panic(fmt.Sprintf("wire: no size rule for field kind %v", k))
}
