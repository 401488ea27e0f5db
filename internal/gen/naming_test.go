package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
)

// Test: snake_case field names become camelCase, digits force capitalization
func TestUnderscoresToCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo_bar_baz", "fooBarBaz"},
		{"foo", "foo"},
		{"foo2bar", "foo2Bar"},
		{"FooBar", "fooBar"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, underscoresToCamelCase(tt.in), "input %q", tt.in)
	}
}

// Test: reserved runtime selectors get a Property suffix, description does not
func TestFieldPlan_ReservedNames(t *testing.T) {
	parent := &schema.Message{Name: "Thing"}

	id := NewFieldPlan(&schema.Field{Name: "id", Number: 1, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: parent}, "AB")
	assert.Equal(t, "idProperty", id.Name)
	assert.Equal(t, "IdProperty", id.CapitalizedName)

	hash := NewFieldPlan(&schema.Field{Name: "hash", Number: 2, Kind: schema.KindString, Label: schema.LabelOptional, Parent: parent}, "AB")
	assert.Equal(t, "hashProperty", hash.Name)

	desc := NewFieldPlan(&schema.Field{Name: "description", Number: 3, Kind: schema.KindString, Label: schema.LabelOptional, Parent: parent}, "AB")
	assert.Equal(t, "description", desc.Name)
}

// Test: accessors whose names collide with ARC ownership prefixes are marked
func TestFieldPlan_RetainedNames(t *testing.T) {
	parent := &schema.Message{Name: "Thing"}

	newValue := NewFieldPlan(&schema.Field{Name: "new_value", Number: 1, Kind: schema.KindString, Label: schema.LabelOptional, Parent: parent}, "")
	assert.Equal(t, " NS_RETURNS_NOT_RETAINED", newValue.StorageAttribute)

	// "newsletter" starts with "new" but is not an ownership prefix.
	newsletter := NewFieldPlan(&schema.Field{Name: "newsletter", Number: 2, Kind: schema.KindString, Label: schema.LabelOptional, Parent: parent}, "")
	assert.Empty(t, newsletter.StorageAttribute)

	// Primitive values are returned by value, no ownership involved.
	newCount := NewFieldPlan(&schema.Field{Name: "new_count", Number: 3, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: parent}, "")
	assert.Empty(t, newCount.StorageAttribute)
}

// Test: class names chain nesting with underscores under the file prefix
func TestMessageClassName(t *testing.T) {
	top := &schema.Message{Name: "Person"}
	inner := &schema.Message{Name: "PhoneNumber", Parent: top}

	assert.Equal(t, "ABPerson", MessageClassName(top, "AB"))
	assert.Equal(t, "ABPerson_PhoneNumber", MessageClassName(inner, "AB"))
}

// Test: enum type and value naming
func TestEnumNaming(t *testing.T) {
	person := &schema.Message{Name: "Person"}
	e := &schema.Enum{
		Name:   "PhoneType",
		Parent: person,
		Values: []schema.EnumValue{
			{Name: "MOBILE", Number: 0},
			{Name: "WORK_FAX", Number: 2},
		},
	}

	assert.Equal(t, "ABPerson_PhoneType", EnumClassName(e, "AB"))
	assert.Equal(t, "ABPerson_PhoneTypeMobile", EnumValueName(e, &e.Values[0], "AB"))
	assert.Equal(t, "ABPerson_PhoneTypeWorkFax", EnumValueName(e, &e.Values[1], "AB"))
}

// Test: default literals carry the C suffix matching the storage type
func TestDefaultValueLiteral(t *testing.T) {
	parent := &schema.Message{Name: "M"}
	tests := []struct {
		kind schema.Kind
		def  string
		want string
	}{
		{schema.KindInt32, "", "0"},
		{schema.KindInt32, "-5", "-5"},
		{schema.KindUint32, "7", "7U"},
		{schema.KindInt64, "9", "9LL"},
		{schema.KindUint64, "9", "9ULL"},
		{schema.KindFloat, "1.5", "1.5f"},
		{schema.KindDouble, "", "0"},
		{schema.KindBool, "true", "YES"},
		{schema.KindBool, "", "NO"},
		{schema.KindString, "hi", `@"hi"`},
		{schema.KindBytes, "", "[NSData data]"},
	}

	for _, tt := range tests {
		f := &schema.Field{Name: "f", Number: 1, Kind: tt.kind, Label: schema.LabelOptional, Default: tt.def, Parent: parent}
		assert.Equal(t, tt.want, NewFieldPlan(f, "").Default, "kind %v default %q", tt.kind, tt.def)
	}
}

// Test: wire metadata lands in the plan
func TestFieldPlan_WireMetadata(t *testing.T) {
	parent := &schema.Message{Name: "M"}
	f := &schema.Field{Name: "values", Number: 4, Kind: schema.KindFixed32, Label: schema.LabelRepeated, Packed: true, Parent: parent}
	p := NewFieldPlan(f, "")

	assert.Equal(t, uint32(4<<3|2), p.Tag)
	assert.Equal(t, 1, p.TagSize)
	assert.Equal(t, 4, p.FixedSize)
	assert.False(t, p.IsObjectArray)
	assert.Equal(t, "PBArrayValueTypeUint32", p.ArrayValueType)
	assert.Equal(t, "uint32", p.ArrayValueTypeName)
}

// Test: message and enum fields resolve their referenced type names
func TestFieldPlan_ReferencedTypes(t *testing.T) {
	person := &schema.Message{Name: "Person"}
	phone := &schema.Message{Name: "PhoneNumber", Parent: person}
	phoneType := &schema.Enum{Name: "PhoneType", Parent: person, Values: []schema.EnumValue{{Name: "MOBILE", Number: 0}}}

	mf := NewFieldPlan(&schema.Field{Name: "phone", Number: 1, Kind: schema.KindMessage, Label: schema.LabelOptional, Parent: person, Message: phone}, "AB")
	assert.Equal(t, "ABPerson_PhoneNumber", mf.Type)
	assert.Equal(t, "ABPerson_PhoneNumber*", mf.StorageType)
	assert.Equal(t, "[ABPerson_PhoneNumber defaultInstance]", mf.Default)
	assert.Equal(t, "Message", mf.GroupOrMessage)

	gf := NewFieldPlan(&schema.Field{Name: "grp", Number: 2, Kind: schema.KindGroup, Label: schema.LabelOptional, Parent: person, Message: phone}, "AB")
	assert.Equal(t, "Group", gf.GroupOrMessage)
	require.Equal(t, 2, gf.TagSize) // start and end tags

	ef := NewFieldPlan(&schema.Field{Name: "type", Number: 3, Kind: schema.KindEnum, Label: schema.LabelOptional, Parent: person, Enum: phoneType}, "AB")
	assert.Equal(t, "ABPerson_PhoneType", ef.Type)
	assert.Equal(t, "ABPerson_PhoneTypeMobile", ef.Default)
}
