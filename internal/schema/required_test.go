package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test: direct required labels and the trailing-comment marker both count
func TestHasRequiredFields_Direct(t *testing.T) {
	none := &Message{Name: "None", Fields: []*Field{
		{Name: "a", Kind: KindInt32, Label: LabelOptional},
	}}
	assert.False(t, HasRequiredFields(none))

	labeled := &Message{Name: "Labeled", Fields: []*Field{
		{Name: "a", Kind: KindInt32, Label: LabelRequired},
	}}
	assert.True(t, HasRequiredFields(labeled))

	tagged := &Message{Name: "Tagged", Fields: []*Field{
		{Name: "a", Kind: KindInt32, Label: LabelOptional, RequiredTag: true},
	}}
	assert.True(t, HasRequiredFields(tagged))
}

// Test: requiredness is found through message fields two levels deep
func TestHasRequiredFields_Transitive(t *testing.T) {
	leaf := &Message{Name: "Leaf", Fields: []*Field{
		{Name: "must", Kind: KindString, Label: LabelRequired},
	}}
	mid := &Message{Name: "Mid"}
	mid.Fields = []*Field{
		{Name: "leaf", Kind: KindMessage, Label: LabelOptional, Message: leaf},
	}
	root := &Message{Name: "Root"}
	root.Fields = []*Field{
		{Name: "mid", Kind: KindMessage, Label: LabelOptional, Message: mid},
	}

	assert.True(t, HasRequiredFields(root))
}

// Test: an extensible message is assumed to carry required fields
func TestHasRequiredFields_Extensible(t *testing.T) {
	m := &Message{
		Name:            "Extended",
		ExtensionRanges: []ExtensionRange{{Start: 100, End: 200}},
	}
	assert.True(t, HasRequiredFields(m))
}

// Test: self-referential types terminate and read as not required
func TestHasRequiredFields_Cycle(t *testing.T) {
	node := &Message{Name: "Node"}
	node.Fields = []*Field{
		{Name: "next", Kind: KindMessage, Label: LabelOptional, Message: node},
		{Name: "value", Kind: KindInt32, Label: LabelOptional},
	}
	assert.False(t, HasRequiredFields(node))

	// A required field elsewhere in the cycle is still found.
	a := &Message{Name: "A"}
	b := &Message{Name: "B"}
	a.Fields = []*Field{{Name: "b", Kind: KindMessage, Label: LabelOptional, Message: b}}
	b.Fields = []*Field{
		{Name: "a", Kind: KindMessage, Label: LabelOptional, Message: a},
		{Name: "must", Kind: KindInt64, Label: LabelRequired},
	}
	assert.True(t, HasRequiredFields(a))
}
