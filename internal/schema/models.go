// Package schema models an immutable snapshot of a protobuf schema file:
// messages, fields, enums, nesting and extension ranges. The snapshot is
// built once per generation run from descriptor protos and never mutated
// afterwards.
package schema

// Kind is a protobuf field type. The numeric values match
// descriptorpb.FieldDescriptorProto_Type so that sorting fields by kind
// reproduces descriptor ordering.
type Kind int32

const (
	KindDouble   Kind = 1
	KindFloat    Kind = 2
	KindInt64    Kind = 3
	KindUint64   Kind = 4
	KindInt32    Kind = 5
	KindFixed64  Kind = 6
	KindFixed32  Kind = 7
	KindBool     Kind = 8
	KindString   Kind = 9
	KindGroup    Kind = 10
	KindMessage  Kind = 11
	KindBytes    Kind = 12
	KindUint32   Kind = 13
	KindEnum     Kind = 14
	KindSfixed32 Kind = 15
	KindSfixed64 Kind = 16
	KindSint32   Kind = 17
	KindSint64   Kind = 18
)

// Label is a proto2 field cardinality.
type Label int32

const (
	LabelOptional Label = 1
	LabelRequired Label = 2
	LabelRepeated Label = 3
)

// File is one schema file: the root of a generation run.
type File struct {
	Name     string
	Package  string
	Messages []*Message
	Enums    []*Enum
}

// Message is a message type, possibly nested inside another message.
type Message struct {
	Name            string
	FullName        string
	Parent          *Message
	Fields          []*Field // declaration order
	Messages        []*Message
	Enums           []*Enum
	ExtensionRanges []ExtensionRange // ascending by Start
	MessageSet      bool             // message_set_wire_format option
}

// Extensible reports whether the message declares any extension ranges.
func (m *Message) Extensible() bool {
	return len(m.ExtensionRanges) > 0
}

// ExtensionRange is a half-open [Start, End) extension number range.
type ExtensionRange struct {
	Start int32
	End   int32
}

// Field is one declared field of a message.
type Field struct {
	Name        string
	Number      int32
	Kind        Kind
	Label       Label
	Packed      bool
	Default     string // schema-declared default literal, "" if none
	Parent      *Message
	Enum        *Enum    // set for KindEnum
	Message     *Message // set for KindMessage and KindGroup
	RequiredTag bool     // trailing comment carries [required=true]
}

// Repeated reports whether the field is a repeated field.
func (f *Field) Repeated() bool {
	return f.Label == LabelRepeated
}

// Required reports whether the field carries the required label.
func (f *Field) Required() bool {
	return f.Label == LabelRequired
}

// Packable reports whether the field's kind admits packed framing: numeric
// scalars and enums only. The packed flag is not legal grammar for strings,
// bytes, messages or groups, so it is ignored for those kinds.
func (f *Field) Packable() bool {
	switch f.Kind {
	case KindString, KindBytes, KindMessage, KindGroup:
		return false
	}
	return true
}

// IsPacked reports whether occurrences of the field are framed as one
// length-delimited blob of untagged elements.
func (f *Field) IsPacked() bool {
	return f.Repeated() && f.Packed && f.Packable()
}

// Enum is an enum type, possibly nested inside a message.
type Enum struct {
	Name     string
	FullName string
	Parent   *Message // nil for top-level enums
	Values   []EnumValue
}

// EnumValue is one declared enum value.
type EnumValue struct {
	Name   string
	Number int32
}

// HasValue reports whether number is a declared value of the enum.
func (e *Enum) HasValue(number int32) bool {
	for _, v := range e.Values {
		if v.Number == number {
			return true
		}
	}
	return false
}

// ValueByName returns the declared value with the given name, or nil.
func (e *Enum) ValueByName(name string) *EnumValue {
	for i := range e.Values {
		if e.Values[i].Name == name {
			return &e.Values[i]
		}
	}
	return nil
}

// DefaultValue is the enum value an unset field of this type reads as: the
// schema-declared default resolved by the field, or the first declared
// value when no default is given.
func (e *Enum) DefaultValue(declared string) *EnumValue {
	if declared != "" {
		if v := e.ValueByName(declared); v != nil {
			return v
		}
	}
	if len(e.Values) == 0 {
		return nil
	}
	return &e.Values[0]
}
