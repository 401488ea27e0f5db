package gen

import (
	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// FieldGenerator emits the per-field code fragments for one declared field.
// There is one implementation per field category and cardinality: primitive,
// enum and message kinds, each in scalar and repeated form. The closed set
// is dispatched through ForField; a kind outside the set is a generator bug.
//
// Operations are grouped by concern. Declaration-unit fragments go into the
// generated header, definition-unit fragments into the implementation file;
// the split is a property of the output target, not of the contract.
type FieldGenerator interface {
	Plan() *FieldPlan

	// Declaration unit.
	HasAccessorDecl(w *writer.Writer)     // - (BOOL)hasFoo;
	AccessorDecl(w *writer.Writer)        // readonly property
	MemberDecls(w *writer.Writer)         // fooAtIndex: and friends
	BuilderMutatorDecls(w *writer.Writer) // setFoo:, addFoo:, mergeFoo:, ...
	BuilderGetterDecls(w *writer.Writer)
	BuilderClearDecl(w *writer.Writer)

	// Definition unit.
	PrivatePropertyDecls(w *writer.Writer) // readwrite class-extension props
	SynthesizeDecls(w *writer.Writer)
	InitDefaults(w *writer.Writer) // construction default assignment
	MemberImpls(w *writer.Writer)
	BuilderMutatorImpls(w *writer.Writer)
	BuilderGetterImpls(w *writer.Writer)
	BuilderClearImpl(w *writer.Writer)
	MergeFrom(w *writer.Writer)  // copy from a built peer when present
	Parse(w *writer.Writer)      // consume one wire occurrence, cursor past tag
	Serialize(w *writer.Writer)  // write wire representation when present
	Size(w *writer.Writer)       // accumulate serialized size; packed fields
	                             // memoize here for the following Serialize
	Dump(w *writer.Writer)       // human-readable "name: value" line
	Equality(w *writer.Writer)   // boolean sub-expression, "&&"-terminated
	Hash(w *writer.Writer)       // fold into hashCode via *31 rolling hash
}

// ForField selects the generator variant for a field.
func ForField(f *schema.Field, prefix string) FieldGenerator {
	plan := NewFieldPlan(f, prefix)
	switch f.Kind {
	case schema.KindMessage, schema.KindGroup:
		if f.Repeated() {
			return &repeatedMessageField{field: f, plan: plan}
		}
		return &messageField{field: f, plan: plan}
	case schema.KindEnum:
		if f.Repeated() {
			return &repeatedEnumField{field: f, plan: plan}
		}
		return &enumField{field: f, plan: plan}
	default:
		if f.Repeated() {
			return &repeatedPrimitiveField{field: f, plan: plan}
		}
		return &primitiveField{field: f, plan: plan}
	}
}
