package gen

import (
	"fmt"
	"strings"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/wire"
)

// reservedNames are identifiers the Objective-C runtime or NSObject already
// claim; fields with these names get a "Property" suffix. "description" is
// deliberately absent: it keeps its name and the message synthesizes the
// property instead, because NSObject requires the selector to exist.
var reservedNames = map[string]bool{
	"id":               true,
	"hash":             true,
	"class":            true,
	"superclass":       true,
	"self":             true,
	"zone":             true,
	"isProxy":          true,
	"copy":             true,
	"mutableCopy":      true,
	"retain":           true,
	"release":          true,
	"autorelease":      true,
	"dealloc":          true,
	"debugDescription": true,
}

// retainedPrefixes trigger ARC's special return-value rules; accessors for
// such names need NS_RETURNS_NOT_RETAINED.
var retainedPrefixes = []string{"new", "copy", "mutableCopy", "alloc"}

// FieldPlan is the resolved, immutable per-field generation plan: names,
// storage representation, default literal and wire metadata. It is built
// once per field and shared by every emission call.
type FieldPlan struct {
	Name             string // camelCase accessor name, reserved-safe
	CapitalizedName  string
	ListName         string // backing array ivar for repeated fields
	Number           int32
	ClassName        string // enclosing message's generated class
	Type             string // element/value type name
	StorageType      string // ivar type, "*"-suffixed for reference types
	StorageAttribute string // accessor attribute, e.g. NS_RETURNS_NOT_RETAINED
	CapitalizedType  string // codec method suffix: Int32, SInt64, String, ...
	Default          string // default value literal
	Tag              uint32
	TagSize          int
	FixedSize        int // -1 when the encoding is variable-length

	ArrayValueType        string // PBArrayValueType constant for scalar arrays
	ArrayValueTypeName    string // PBArray accessor infix, e.g. int32
	ArrayValueTypeNameCap string

	GroupOrMessage   string // codec method infix for message kinds
	IsObjectArray    bool   // repeated storage is NSMutableArray, not PBArray
	ReturnsPrimitive bool   // value is a C scalar, compared with ==
}

// NewFieldPlan resolves the generation plan for one field. prefix is the
// class-name prefix applied to every generated type in the file.
func NewFieldPlan(f *schema.Field, prefix string) *FieldPlan {
	name := underscoresToCamelCase(f.Name)
	capName := underscoresToCapitalizedCamelCase(f.Name)
	if reservedNames[name] {
		name += "Property"
		capName += "Property"
	}

	p := &FieldPlan{
		Name:             name,
		CapitalizedName:  capName,
		ListName:         underscoresToCamelCase(f.Name) + "Array",
		Number:           f.Number,
		ClassName:        MessageClassName(f.Parent, prefix),
		Tag:              wire.FieldTag(f),
		TagSize:          wire.TagSize(f.Number, f.Kind),
		FixedSize:        wire.FixedSize(f.Kind),
		ReturnsPrimitive: returnsPrimitive(f.Kind),
		IsObjectArray:    isObjectArray(f.Kind),
	}

	switch f.Kind {
	case schema.KindEnum:
		p.Type = EnumClassName(f.Enum, prefix)
		p.StorageType = p.Type
		p.CapitalizedType = "Enum"
		p.Default = EnumValueName(f.Enum, f.Enum.DefaultValue(f.Default), prefix)
	case schema.KindMessage, schema.KindGroup:
		p.Type = MessageClassName(f.Message, prefix)
		p.StorageType = p.Type + "*"
		p.CapitalizedType = "Message"
		p.GroupOrMessage = "Message"
		if f.Kind == schema.KindGroup {
			p.CapitalizedType = "Group"
			p.GroupOrMessage = "Group"
		}
		p.Default = fmt.Sprintf("[%s defaultInstance]", p.Type)
	default:
		p.Type = primitiveTypeName(f.Kind)
		p.StorageType = p.Type
		if !p.ReturnsPrimitive {
			p.StorageType = p.Type + "*"
			if isRetainedName(name) {
				p.StorageAttribute = " NS_RETURNS_NOT_RETAINED"
			}
		}
		p.CapitalizedType = capitalizedTypeName(f.Kind)
		p.Default = defaultValueLiteral(f)
	}

	if !p.IsObjectArray {
		p.ArrayValueType = arrayValueType(f.Kind)
		p.ArrayValueTypeName = arrayValueTypeName(f.Kind)
		p.ArrayValueTypeNameCap = arrayValueTypeNameCap(f.Kind)
	}

	return p
}

// MessageClassName is the generated Objective-C class name for a message:
// the file prefix followed by the nesting chain joined with underscores.
func MessageClassName(m *schema.Message, prefix string) string {
	return prefix + nestingChain(m)
}

// EnumClassName is the generated Objective-C type name for an enum.
func EnumClassName(e *schema.Enum, prefix string) string {
	if e.Parent != nil {
		return prefix + nestingChain(e.Parent) + "_" + e.Name
	}
	return prefix + e.Name
}

// EnumValueName is the generated constant name for one enum value:
// the enum type name followed by the capitalized value name.
func EnumValueName(e *schema.Enum, v *schema.EnumValue, prefix string) string {
	if v == nil {
		return EnumClassName(e, prefix) + "Unknown"
	}
	return EnumClassName(e, prefix) + underscoresToCapitalizedCamelCase(strings.ToLower(v.Name))
}

func nestingChain(m *schema.Message) string {
	if m.Parent == nil {
		return m.Name
	}
	return nestingChain(m.Parent) + "_" + m.Name
}

func underscoresToCamelCase(s string) string {
	out := underscoresToCapitalizedCamelCase(s)
	if out == "" {
		return out
	}
	return strings.ToLower(out[:1]) + out[1:]
}

func underscoresToCapitalizedCamelCase(s string) string {
	var sb strings.Builder
	capNext := true
	for _, r := range s {
		switch {
		case r == '_':
			capNext = true
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
			capNext = true
		case capNext:
			sb.WriteString(strings.ToUpper(string(r)))
			capNext = false
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isRetainedName(name string) bool {
	for _, prefix := range retainedPrefixes {
		if strings.HasPrefix(name, prefix) {
			rest := strings.TrimPrefix(name, prefix)
			if rest == "" || rest[0] >= 'A' && rest[0] <= 'Z' {
				return true
			}
		}
	}
	return false
}

func primitiveTypeName(k schema.Kind) string {
	switch k {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32:
		return "int32_t"
	case schema.KindUint32, schema.KindFixed32:
		return "uint32_t"
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		return "int64_t"
	case schema.KindUint64, schema.KindFixed64:
		return "uint64_t"
	case schema.KindFloat:
		return "Float32"
	case schema.KindDouble:
		return "Float64"
	case schema.KindBool:
		return "BOOL"
	case schema.KindString:
		return "NSString"
	case schema.KindBytes:
		return "NSData"
	}
	panic(fmt.Sprintf("gen: no primitive type name for kind %v", k))
}

func capitalizedTypeName(k schema.Kind) string {
	switch k {
	case schema.KindInt32:
		return "Int32"
	case schema.KindUint32:
		return "UInt32"
	case schema.KindSint32:
		return "SInt32"
	case schema.KindFixed32:
		return "Fixed32"
	case schema.KindSfixed32:
		return "SFixed32"
	case schema.KindInt64:
		return "Int64"
	case schema.KindUint64:
		return "UInt64"
	case schema.KindSint64:
		return "SInt64"
	case schema.KindFixed64:
		return "Fixed64"
	case schema.KindSfixed64:
		return "SFixed64"
	case schema.KindFloat:
		return "Float"
	case schema.KindDouble:
		return "Double"
	case schema.KindBool:
		return "Bool"
	case schema.KindString:
		return "String"
	case schema.KindBytes:
		return "Data"
	}
	panic(fmt.Sprintf("gen: no capitalized type name for kind %v", k))
}

func arrayValueType(k schema.Kind) string {
	return "PBArrayValueType" + arrayValueTypeNameCap(k)
}

func arrayValueTypeName(k schema.Kind) string {
	switch k {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32, schema.KindEnum:
		return "int32"
	case schema.KindUint32, schema.KindFixed32:
		return "uint32"
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		return "int64"
	case schema.KindUint64, schema.KindFixed64:
		return "uint64"
	case schema.KindFloat:
		return "float"
	case schema.KindDouble:
		return "double"
	case schema.KindBool:
		return "bool"
	}
	return "object"
}

func arrayValueTypeNameCap(k schema.Kind) string {
	switch k {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32, schema.KindEnum:
		return "Int32"
	case schema.KindUint32, schema.KindFixed32:
		return "Uint32"
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		return "Int64"
	case schema.KindUint64, schema.KindFixed64:
		return "Uint64"
	case schema.KindFloat:
		return "Float"
	case schema.KindDouble:
		return "Double"
	case schema.KindBool:
		return "Bool"
	}
	return "Object"
}

func returnsPrimitive(k schema.Kind) bool {
	switch k {
	case schema.KindString, schema.KindBytes, schema.KindMessage, schema.KindGroup:
		return false
	}
	return true
}

func isObjectArray(k schema.Kind) bool {
	switch k {
	case schema.KindString, schema.KindBytes, schema.KindMessage, schema.KindGroup:
		return true
	}
	return false
}

// defaultValueLiteral renders the construction default for primitive kinds.
func defaultValueLiteral(f *schema.Field) string {
	def := f.Default
	switch f.Kind {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32:
		return orZero(def)
	case schema.KindUint32, schema.KindFixed32:
		return orZero(def) + "U"
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		return orZero(def) + "LL"
	case schema.KindUint64, schema.KindFixed64:
		return orZero(def) + "ULL"
	case schema.KindFloat:
		return orZero(def) + "f"
	case schema.KindDouble:
		return orZero(def)
	case schema.KindBool:
		if def == "true" {
			return "YES"
		}
		return "NO"
	case schema.KindString:
		return fmt.Sprintf("@%q", def)
	case schema.KindBytes:
		if def == "" {
			return "[NSData data]"
		}
		return fmt.Sprintf("[%q dataUsingEncoding:NSUTF8StringEncoding]", def)
	}
	panic(fmt.Sprintf("gen: no default literal for kind %v", f.Kind))
}

func orZero(def string) string {
	if def == "" {
		return "0"
	}
	return def
}

// boxValue wraps a primitive expression in an NSNumber so it can be
// formatted or hashed as an object; reference-typed values pass through.
func boxValue(k schema.Kind, expr string) string {
	switch k {
	case schema.KindInt32, schema.KindSint32, schema.KindSfixed32:
		return fmt.Sprintf("[NSNumber numberWithInteger:%s]", expr)
	case schema.KindUint32, schema.KindFixed32:
		return fmt.Sprintf("[NSNumber numberWithUnsignedInt:%s]", expr)
	case schema.KindInt64, schema.KindSint64, schema.KindSfixed64:
		return fmt.Sprintf("[NSNumber numberWithLongLong:%s]", expr)
	case schema.KindUint64, schema.KindFixed64:
		return fmt.Sprintf("[NSNumber numberWithUnsignedLongLong:%s]", expr)
	case schema.KindFloat:
		return fmt.Sprintf("[NSNumber numberWithFloat:%s]", expr)
	case schema.KindDouble:
		return fmt.Sprintf("[NSNumber numberWithDouble:%s]", expr)
	case schema.KindBool:
		return fmt.Sprintf("[NSNumber numberWithBool:%s]", expr)
	}
	return expr
}
