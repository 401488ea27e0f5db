package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
)

// Test: every field kind maps to the wire type the standard encoding uses
func TestTypeForKind(t *testing.T) {
	tests := []struct {
		kind schema.Kind
		want Type
	}{
		{schema.KindInt32, TypeVarint},
		{schema.KindInt64, TypeVarint},
		{schema.KindUint32, TypeVarint},
		{schema.KindUint64, TypeVarint},
		{schema.KindSint32, TypeVarint},
		{schema.KindSint64, TypeVarint},
		{schema.KindBool, TypeVarint},
		{schema.KindEnum, TypeVarint},
		{schema.KindFixed64, TypeFixed64},
		{schema.KindSfixed64, TypeFixed64},
		{schema.KindDouble, TypeFixed64},
		{schema.KindString, TypeBytes},
		{schema.KindBytes, TypeBytes},
		{schema.KindMessage, TypeBytes},
		{schema.KindGroup, TypeStartGroup},
		{schema.KindFixed32, TypeFixed32},
		{schema.KindSfixed32, TypeFixed32},
		{schema.KindFloat, TypeFixed32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeForKind(tt.kind), "kind %v", tt.kind)
	}
}

// Test: packed repeated fields are framed length-delimited regardless of kind
func TestTypeForField_Packed(t *testing.T) {
	f := &schema.Field{
		Number: 4,
		Kind:   schema.KindFixed32,
		Label:  schema.LabelRepeated,
		Packed: true,
	}
	assert.Equal(t, TypeBytes, TypeForField(f))

	// The packed flag is meaningless on a non-repeated field.
	f.Label = schema.LabelOptional
	assert.Equal(t, TypeFixed32, TypeForField(f))

	// ...and on unpackable kinds.
	f.Label = schema.LabelRepeated
	f.Kind = schema.KindString
	assert.Equal(t, TypeBytes, TypeForField(f))
	f.Kind = schema.KindMessage
	assert.Equal(t, TypeBytes, TypeForField(f))
}

// Test: tag arithmetic matches number<<3|type
func TestMakeTag(t *testing.T) {
	assert.Equal(t, uint32(0x08), MakeTag(1, TypeVarint))
	assert.Equal(t, uint32(0x12), MakeTag(2, TypeBytes))
	assert.Equal(t, uint32(0x1d), MakeTag(3, TypeFixed32))
	// Field 16 is the first to need a two-byte tag.
	assert.Equal(t, uint32(0x80), MakeTag(16, TypeVarint))
}

// Test: varint sizes step up at every 7-bit boundary
func TestVarintSize(t *testing.T) {
	tests := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 3},
		{1 << 28, 5},
		{1<<64 - 1, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VarintSize(tt.v), "value %d", tt.v)
	}
}

// Test: tag byte counts, doubled for groups which close with a second tag
func TestTagSize(t *testing.T) {
	assert.Equal(t, 1, TagSize(1, schema.KindInt32))
	assert.Equal(t, 1, TagSize(15, schema.KindInt32))
	assert.Equal(t, 2, TagSize(16, schema.KindInt32))
	assert.Equal(t, 2, TagSize(2047, schema.KindInt32))
	assert.Equal(t, 3, TagSize(2048, schema.KindInt32))

	assert.Equal(t, 2, TagSize(1, schema.KindGroup))
	assert.Equal(t, 4, TagSize(16, schema.KindGroup))
}

// Test: fixed-width kinds report their encoded size, the rest report -1
func TestFixedSize(t *testing.T) {
	assert.Equal(t, 4, FixedSize(schema.KindFixed32))
	assert.Equal(t, 8, FixedSize(schema.KindFixed64))
	assert.Equal(t, 4, FixedSize(schema.KindSfixed32))
	assert.Equal(t, 8, FixedSize(schema.KindSfixed64))
	assert.Equal(t, 4, FixedSize(schema.KindFloat))
	assert.Equal(t, 8, FixedSize(schema.KindDouble))
	assert.Equal(t, 1, FixedSize(schema.KindBool))

	assert.Equal(t, -1, FixedSize(schema.KindInt32))
	assert.Equal(t, -1, FixedSize(schema.KindString))
	assert.Equal(t, -1, FixedSize(schema.KindMessage))
	assert.Equal(t, -1, FixedSize(schema.KindGroup))
}

// Test: the registered tag for a packed field uses length-delimited framing
func TestFieldTag(t *testing.T) {
	packed := &schema.Field{Number: 7, Kind: schema.KindInt32, Label: schema.LabelRepeated, Packed: true}
	assert.Equal(t, uint32(7<<3|2), FieldTag(packed))

	unpacked := &schema.Field{Number: 7, Kind: schema.KindInt32, Label: schema.LabelRepeated}
	assert.Equal(t, uint32(7<<3|0), FieldTag(unpacked))

	group := &schema.Field{Number: 3, Kind: schema.KindGroup, Label: schema.LabelOptional}
	assert.Equal(t, uint32(3<<3|3), FieldTag(group))
}
