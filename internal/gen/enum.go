package gen

import (
	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// EnumGenerator emits the C enum typedef and its validity function for one
// enum type. Enums compile to plain C enums, so unlike messages they need
// no builder companion.
type EnumGenerator struct {
	enum     *schema.Enum
	typeName string
	prefix   string
}

func NewEnumGenerator(e *schema.Enum, prefix string) *EnumGenerator {
	return &EnumGenerator{enum: e, typeName: EnumClassName(e, prefix), prefix: prefix}
}

// TypeName returns the generated Objective-C type name.
func (g *EnumGenerator) TypeName() string { return g.typeName }

// GenerateHeader emits the typedef and the validity function declaration.
func (g *EnumGenerator) GenerateHeader(w *writer.Writer) {
	w.Line("typedef enum {")
	w.Indent()
	for _, v := range g.enum.Values {
		w.Linef("%s = %d,", EnumValueName(g.enum, &v, g.prefix), v.Number)
	}
	w.Outdent()
	w.Linef("} %s;", g.typeName)
	w.BlankLine()
	w.Linef("BOOL %sIsValidValue(%s value);", g.typeName, g.typeName)
	w.BlankLine()
}

// GenerateSource emits the validity function. Aliased values share a case
// label, so each number is emitted once.
func (g *EnumGenerator) GenerateSource(w *writer.Writer) {
	w.Linef("BOOL %sIsValidValue(%s value) {", g.typeName, g.typeName)
	w.Line("  switch (value) {")
	w.Indent()
	w.Indent()
	seen := map[int32]bool{}
	for _, v := range g.enum.Values {
		if seen[v.Number] {
			continue
		}
		seen[v.Number] = true
		w.Linef("case %s:", EnumValueName(g.enum, &v, g.prefix))
	}
	w.Outdent()
	w.Outdent()
	w.Line("      return YES;")
	w.Line("    default:")
	w.Line("      return NO;")
	w.Line("  }")
	w.Line("}")
	w.BlankLine()
}
