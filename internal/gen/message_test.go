package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

func renderHeader(m *schema.Message, opts Options) string {
	w := writer.NewWriter("  ")
	NewMessageGenerator(m, opts).GenerateHeader(w)
	return w.String()
}

func renderSource(m *schema.Message, opts Options) string {
	w := writer.NewWriter("  ")
	NewMessageGenerator(m, opts).GenerateSource(w)
	return w.String()
}

// ordered asserts that each needle appears after the previous one.
func ordered(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	last := -1
	for _, n := range needles {
		i := strings.Index(haystack[last+1:], n)
		require.GreaterOrEqual(t, i, 0, "missing %q", n)
		i += last + 1
		require.Greater(t, i, last, "%q out of order", n)
		last = i
	}
}

// Test: declaration layout puts bools first, repeated fields last
func TestMessageGenerator_TypeOrdering(t *testing.T) {
	m := &schema.Message{Name: "Layout"}
	m.Fields = []*schema.Field{
		{Name: "items", Number: 1, Kind: schema.KindInt32, Label: schema.LabelRepeated, Parent: m},
		{Name: "name", Number: 2, Kind: schema.KindString, Label: schema.LabelOptional, Parent: m},
		{Name: "active", Number: 3, Kind: schema.KindBool, Label: schema.LabelOptional, Parent: m},
		{Name: "count", Number: 4, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
	}

	src := renderSource(m, Options{})
	extension := src[:strings.Index(src, "@implementation")]
	ordered(t, extension,
		"BOOL hasActive;",
		"int32_t count;",
		"NSString* name;",
		"PBAppendableArray * itemsArray;",
	)
}

// Test: wire-facing fragments interleave fields with extension ranges by number
func TestMessageGenerator_WireOrderInterleavesRanges(t *testing.T) {
	m := &schema.Message{
		Name:            "Extended",
		ExtensionRanges: []schema.ExtensionRange{{Start: 2, End: 4}},
	}
	m.Fields = []*schema.Field{
		{Name: "last", Number: 5, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
		{Name: "first", Number: 1, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
	}

	src := renderSource(m, Options{})
	serialize := src[strings.Index(src, "writeToCodedOutputStream"):strings.Index(src, "serializedSize")]
	ordered(t, serialize,
		"[output writeInt32:1 value:self.first];",
		"from:2",
		"to:4];",
		"[output writeInt32:5 value:self.last];",
	)
}

// Test: serializedSize memoizes and tallies fields in numeric order
func TestMessageGenerator_SerializedSize(t *testing.T) {
	m := &schema.Message{Name: "Sized"}
	m.Fields = []*schema.Field{
		{Name: "b", Number: 2, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
		{Name: "a", Number: 1, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
	}

	src := renderSource(m, Options{})
	assert.Contains(t, src, "int32_t size_ = memoizedSerializedSize;")
	assert.Contains(t, src, "memoizedSerializedSize = size_;")

	size := src[strings.Index(src, "- (int32_t) serializedSize"):]
	size = size[:strings.Index(size, "+ (")]
	ordered(t, size,
		"computeInt32Size(1, self.a);",
		"computeInt32Size(2, self.b);",
		"size_ += self.unknownFields.serializedSize;",
	)
}

// Test: the parse loop handles tag zero, unknown tags and each field tag
func TestMessageGenerator_ParseDispatch(t *testing.T) {
	m := &schema.Message{Name: "Parsed"}
	m.Fields = []*schema.Field{
		{Name: "name", Number: 1, Kind: schema.KindString, Label: schema.LabelOptional, Parent: m},
		{Name: "samples", Number: 2, Kind: schema.KindInt32, Label: schema.LabelRepeated, Packed: true, Parent: m},
	}

	g := NewMessageGenerator(m, Options{})
	assert.Equal(t, []uint32{10, 18}, g.ParseDispatchTags())

	src := renderSource(m, Options{})
	assert.Contains(t, src, "case 0:")
	assert.Contains(t, src, "if (![self parseUnknownField:input unknownFields:unknownFields extensionRegistry:extensionRegistry tag:tag]) {")
	assert.Contains(t, src, "case 10: {")
	assert.Contains(t, src, "case 18: {") // packed framing, not varint
}

// Test: isInitialized covers labels, markers, recursion and extensions
func TestMessageGenerator_IsInitialized(t *testing.T) {
	needy := &schema.Message{Name: "Needy"}
	needy.Fields = []*schema.Field{
		{Name: "must", Number: 1, Kind: schema.KindInt32, Label: schema.LabelRequired, Parent: needy},
	}

	m := &schema.Message{Name: "Outer"}
	m.Fields = []*schema.Field{
		{Name: "title", Number: 1, Kind: schema.KindString, Label: schema.LabelRequired, Parent: m},
		{Name: "note", Number: 2, Kind: schema.KindString, Label: schema.LabelOptional, RequiredTag: true, Parent: m},
		{Name: "child", Number: 3, Kind: schema.KindMessage, Label: schema.LabelOptional, Parent: m, Message: needy},
		{Name: "kids", Number: 4, Kind: schema.KindMessage, Label: schema.LabelRepeated, Parent: m, Message: needy},
	}

	src := renderSource(m, Options{})
	init := src[strings.Index(src, "- (BOOL) isInitialized"):]
	init = init[:strings.Index(init, "writeToCodedOutputStream")]

	assert.Contains(t, init, "if (!self.hasTitle) {")
	assert.Contains(t, init, "if (!self.hasNote) {")
	assert.Contains(t, init, "if (self.hasChild) {")
	assert.Contains(t, init, "if (!self.child.isInitialized) {")
	assert.Contains(t, init, "for (Needy* element in self.kids) {")
}

// Test: extensible messages check extension initialization and merge extensions
func TestMessageGenerator_Extensible(t *testing.T) {
	m := &schema.Message{
		Name:            "Extended",
		ExtensionRanges: []schema.ExtensionRange{{Start: 100, End: 200}},
	}

	header := renderHeader(m, Options{})
	assert.Contains(t, header, "@interface Extended : PBExtendableMessage")

	src := renderSource(m, Options{})
	assert.Contains(t, src, "if (!self.extensionsAreInitialized) {")
	assert.Contains(t, src, "size_ += [self extensionsSerializedSize];")
	assert.Contains(t, src, "[self mergeExtensionFields:other];")
	assert.Contains(t, src, "[self isEqualExtensionsInOther:otherMessage from:100 to:200] &&")
	assert.Contains(t, src, "hashCode = hashCode * 31 + [self hashExtensionsFrom:100 to:200];")
}

// Test: message-set wire format swaps the unknown-field serializer
func TestMessageGenerator_MessageSet(t *testing.T) {
	m := &schema.Message{
		Name:            "ItemSet",
		MessageSet:      true,
		ExtensionRanges: []schema.ExtensionRange{{Start: 4, End: 536870912}},
	}

	src := renderSource(m, Options{})
	assert.Contains(t, src, "[self.unknownFields writeAsMessageSetTo:output];")
	assert.Contains(t, src, "size_ += self.unknownFields.serializedSizeAsMessageSet;")
}

// Test: the hash fold starts from seed 7 and ends with unknown fields
func TestMessageGenerator_Hash(t *testing.T) {
	m := &schema.Message{Name: "Hashed"}
	m.Fields = []*schema.Field{
		{Name: "a", Number: 1, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
	}

	src := renderSource(m, Options{})
	ordered(t, src,
		"NSUInteger hashCode = 7;",
		"hashCode = hashCode * 31 +",
		"hashCode = hashCode * 31 + [self.unknownFields hash];",
	)
}

// Test: partial merge is emitted only for opted-in classes
func TestMessageGenerator_PartialMergeGating(t *testing.T) {
	m := &schema.Message{Name: "Patchable"}
	m.Fields = []*schema.Field{
		{Name: "name", Number: 1, Kind: schema.KindString, Label: schema.LabelOptional, Parent: m},
		{Name: "tags", Number: 2, Kind: schema.KindString, Label: schema.LabelRepeated, Parent: m},
	}

	plain := renderSource(m, Options{})
	assert.NotContains(t, plain, "partiallyMergeFrom:")

	opts := Options{PartialMergeClasses: map[string]bool{"Patchable": true}}
	src := renderSource(m, opts)
	assert.Contains(t, src, "- (Patchable_Builder*) partiallyMergeFrom:(Patchable*) other fieldIDs:(NSSet <NSNumber *> *)fieldIDs {")
	assert.Contains(t, src, "if ([fieldIDs containsObject:@1]) {")
	assert.Contains(t, src, "if ([other hasName]) {")
	assert.Contains(t, src, "[self clearName];")
	assert.Contains(t, src, "[self setTagsArray:other.tags];")

	header := renderHeader(m, opts)
	assert.Contains(t, header, "partiallyMergeFrom:(Patchable*) other fieldIDs:")
}

// Test: merging from the default instance short-circuits
func TestMessageGenerator_MergeFromDefaultInstance(t *testing.T) {
	m := &schema.Message{Name: "Merged"}
	m.Fields = []*schema.Field{
		{Name: "a", Number: 1, Kind: schema.KindInt32, Label: schema.LabelOptional, Parent: m},
	}

	src := renderSource(m, Options{})
	ordered(t, src,
		"- (Merged_Builder*) mergeFrom:(Merged*) other {",
		"if (other == [Merged defaultInstance]) {",
		"return self;",
		"[self mergeUnknownFields:other.unknownFields];",
	)
}

// Test: nested messages recurse into both units
func TestMessageGenerator_Nesting(t *testing.T) {
	outer := &schema.Message{Name: "Person"}
	inner := &schema.Message{Name: "PhoneNumber", Parent: outer}
	outer.Messages = []*schema.Message{inner}

	header := renderHeader(outer, Options{Prefix: "AB"})
	assert.Contains(t, header, "@interface ABPerson : PBGeneratedMessage")
	assert.Contains(t, header, "@interface ABPerson_PhoneNumber : PBGeneratedMessage")
	assert.Contains(t, header, "@interface ABPerson_PhoneNumber_Builder :")

	src := renderSource(outer, Options{Prefix: "AB"})
	assert.Contains(t, src, "@implementation ABPerson_PhoneNumber")
}
