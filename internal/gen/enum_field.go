package gen

import (
	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// enumField generates fragments for non-repeated enum fields. Parsed values
// are validated against the enum's legal-value predicate; invalid values are
// routed into the unknown-field set instead of failing the parse.
type enumField struct {
	field *schema.Field
	plan  *FieldPlan
}

func (g *enumField) Plan() *FieldPlan { return g.plan }

func (g *enumField) HasAccessorDecl(w *writer.Writer) {
	w.Linef("- (BOOL)has%s;", g.plan.CapitalizedName)
}

func (g *enumField) AccessorDecl(w *writer.Writer) {
	w.Linef("@property (nonatomic, readonly) %s %s;", g.plan.Type, g.plan.Name)
}

func (g *enumField) MemberDecls(w *writer.Writer) {}

func (g *enumField) BuilderMutatorDecls(w *writer.Writer) {
	w.Linef("- (%s_Builder*)set%s:(%s) value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
}

func (g *enumField) BuilderGetterDecls(w *writer.Writer) {
	w.Linef("- (%s)%s;", g.plan.Type, g.plan.Name)
	w.Linef("- (BOOL)has%s;", g.plan.CapitalizedName)
}

func (g *enumField) BuilderClearDecl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *enumField) PrivatePropertyDecls(w *writer.Writer) {
	w.Linef("@property (nonatomic, readwrite) BOOL has%s;", g.plan.CapitalizedName)
	w.Linef("@property (nonatomic, readwrite) %s %s;", g.plan.Type, g.plan.Name)
}

func (g *enumField) SynthesizeDecls(w *writer.Writer) {}

func (g *enumField) InitDefaults(w *writer.Writer) {
	w.Linef("self.%s = %s;", g.plan.Name, g.plan.Default)
}

func (g *enumField) MemberImpls(w *writer.Writer) {}

func (g *enumField) BuilderMutatorImpls(w *writer.Writer) {
	w.Linef("- (%s_Builder*)set%s:(%s) value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
	w.Linef(`  NSAssert(%sIsValidValue(value), @"The value '%%d' is invalid for %s", value);`, g.plan.Type, g.plan.Type)
	w.Linef("  builder_result.has%s = YES;", g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = value;", g.plan.Name)
	w.Line("  return self;")
	w.Line("}")
}

func (g *enumField) BuilderGetterImpls(w *writer.Writer) {
	w.Linef("- (%s)%s {", g.plan.Type, g.plan.Name)
	w.Linef("  return builder_result.%s;", g.plan.Name)
	w.Line("}")
	w.Linef("- (BOOL)has%s {", g.plan.CapitalizedName)
	w.Linef("  return builder_result.has%s;", g.plan.CapitalizedName)
	w.Line("}")
}

func (g *enumField) BuilderClearImpl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.has%s = NO;", g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = %s;", g.plan.Name, g.plan.Default)
	w.Line("  return self;")
	w.Line("}")
}

func (g *enumField) MergeFrom(w *writer.Writer) {
	w.Linef("if (other.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [self set%s:other.%s];", g.plan.CapitalizedName, g.plan.Name)
	w.Line("}")
}

func (g *enumField) Parse(w *writer.Writer) {
	w.Linef("%s value = (%s)[input readEnum];", g.plan.Type, g.plan.Type)
	w.Linef("if (%sIsValidValue(value)) {", g.plan.Type)
	w.Linef("  [self set%s:value];", g.plan.CapitalizedName)
	w.Line("} else {")
	w.Linef("  [unknownFields mergeVarintField:%d value:value];", g.plan.Number)
	w.Line("}")
}

func (g *enumField) Serialize(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [output writeEnum:%d value:self.%s];", g.plan.Number, g.plan.Name)
	w.Line("}")
}

func (g *enumField) Size(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  size_ += computeEnumSize(%d, self.%s);", g.plan.Number, g.plan.Name)
	w.Line("}")
}

func (g *enumField) Dump(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef(`  [output appendFormat:@"%%@%%@: %%d\n", indent, @"%s", self.%s];`, g.plan.Name, g.plan.Name)
	w.Line("}")
}

func (g *enumField) Equality(w *writer.Writer) {
	w.Linef("self.has%s == otherMessage.has%s &&", g.plan.CapitalizedName, g.plan.CapitalizedName)
	w.Linef("(!self.has%s || self.%s == otherMessage.%s) &&", g.plan.CapitalizedName, g.plan.Name, g.plan.Name)
}

func (g *enumField) Hash(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  hashCode = hashCode * 31 + self.%s;", g.plan.Name)
	w.Line("}")
}

// repeatedEnumField generates fragments for repeated enum fields, stored in
// an int32-typed PBAppendableArray.
type repeatedEnumField struct {
	field *schema.Field
	plan  *FieldPlan
}

func (g *repeatedEnumField) Plan() *FieldPlan { return g.plan }

func (g *repeatedEnumField) HasAccessorDecl(w *writer.Writer) {}

func (g *repeatedEnumField) AccessorDecl(w *writer.Writer) {
	w.Linef("@property (nonatomic, readonly, nullable) PBArray * %s;", g.plan.Name)
}

func (g *repeatedEnumField) MemberDecls(w *writer.Writer) {
	w.Linef("- (%s)%sAtIndex:(NSUInteger)index;", g.plan.Type, g.plan.Name)
}

func (g *repeatedEnumField) BuilderMutatorDecls(w *writer.Writer) {
	w.Linef("- (%s_Builder *)add%s:(%s)value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
	w.Linef("- (%s_Builder *)set%sArray:(NSArray<NSNumber *> *)array;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *repeatedEnumField) BuilderGetterDecls(w *writer.Writer) {
	w.Linef("- (PBAppendableArray *)%s;", g.plan.Name)
}

func (g *repeatedEnumField) BuilderClearDecl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *repeatedEnumField) PrivatePropertyDecls(w *writer.Writer) {
	w.Linef("@property (strong) PBAppendableArray * %s;", g.plan.ListName)
	if g.field.IsPacked() {
		w.Linef("@property (nonatomic) int32_t %sMemoizedSerializedSize;", g.plan.Name)
	}
}

func (g *repeatedEnumField) SynthesizeDecls(w *writer.Writer) {}

func (g *repeatedEnumField) InitDefaults(w *writer.Writer) {}

func (g *repeatedEnumField) MemberImpls(w *writer.Writer) {
	w.Linef("- (PBArray *)%s {", g.plan.Name)
	w.Linef("  return self.%s;", g.plan.ListName)
	w.Line("}")
	w.Linef("- (%s)%sAtIndex:(NSUInteger)index {", g.plan.Type, g.plan.Name)
	w.Linef("  return (%s)[self.%s int32AtIndex:index];", g.plan.Type, g.plan.ListName)
	w.Line("}")
}

func (g *repeatedEnumField) BuilderMutatorImpls(w *writer.Writer) {
	w.Linef("- (%s_Builder *)add%s:(%s)value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
	w.Linef("  if (builder_result.%s == nil) {", g.plan.ListName)
	w.Linef("    builder_result.%s = [PBAppendableArray arrayWithValueType:PBArrayValueTypeInt32];", g.plan.ListName)
	w.Line("  }")
	w.Linef("  [builder_result.%s addInt32:value];", g.plan.ListName)
	w.Line("  return self;")
	w.Line("}")
	w.Linef("- (%s_Builder *)set%sArray:(NSArray *)array {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = [PBAppendableArray arrayWithArray:array valueType:PBArrayValueTypeInt32];", g.plan.ListName)
	w.Line("  return self;")
	w.Line("}")
}

func (g *repeatedEnumField) BuilderGetterImpls(w *writer.Writer) {
	w.Linef("- (PBAppendableArray *)%s {", g.plan.Name)
	w.Linef("  return builder_result.%s;", g.plan.ListName)
	w.Line("}")
}

func (g *repeatedEnumField) BuilderClearImpl(w *writer.Writer) {
	w.Linef("- (%s_Builder *)clear%s {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = nil;", g.plan.ListName)
	w.Line("  return self;")
	w.Line("}")
}

func (g *repeatedEnumField) MergeFrom(w *writer.Writer) {
	w.Linef("if (other.%s.count > 0) {", g.plan.ListName)
	w.Linef("  builder_result.%s = [other.%s copy];", g.plan.ListName, g.plan.ListName)
	w.Line("}")
}

func (g *repeatedEnumField) Parse(w *writer.Writer) {
	if g.field.IsPacked() {
		w.Line("int32_t length = [input readRawVarint32];")
		w.Line("int32_t oldLimit = [input pushLimit:length];")
		w.Line("while (input.bytesUntilLimit > 0) {")
		w.Indent()
	}
	w.Linef("%s value = (%s)[input readEnum];", g.plan.Type, g.plan.Type)
	w.Linef("if (%sIsValidValue(value)) {", g.plan.Type)
	w.Linef("  [self add%s:value];", g.plan.CapitalizedName)
	w.Line("} else {")
	w.Linef("  [unknownFields mergeVarintField:%d value:value];", g.plan.Number)
	w.Line("}")
	if g.field.IsPacked() {
		w.Outdent()
		w.Line("}")
		w.Line("[input popLimit:oldLimit];")
	}
}

func (g *repeatedEnumField) Serialize(w *writer.Writer) {
	w.Linef("const NSUInteger %sCount = self.%s.count;", g.plan.ListName, g.plan.ListName)
	w.Linef("const %s *%sValues = (const %s *)self.%s.data;", g.plan.Type, g.plan.ListName, g.plan.Type, g.plan.ListName)
	if g.field.IsPacked() {
		w.Linef("if (self.%s.count > 0) {", g.plan.ListName)
		w.Linef("  [output writeRawVarint32:%d];", g.plan.Tag)
		w.Linef("  [output writeRawVarint32:self.%sMemoizedSerializedSize];", g.plan.Name)
		w.Line("}")
		w.Linef("for (NSUInteger i = 0; i < %sCount; ++i) {", g.plan.ListName)
		w.Linef("  [output writeEnumNoTag:%sValues[i]];", g.plan.ListName)
		w.Line("}")
	} else {
		w.Linef("for (NSUInteger i = 0; i < %sCount; ++i) {", g.plan.ListName)
		w.Linef("  [output writeEnum:%d value:%sValues[i]];", g.plan.Number, g.plan.ListName)
		w.Line("}")
	}
}

func (g *repeatedEnumField) Size(w *writer.Writer) {
	w.Line("{")
	w.Indent()
	w.Line("int32_t dataSize = 0;")
	w.Linef("const NSUInteger count = self.%s.count;", g.plan.ListName)
	w.Linef("const %s *values = (const %s *)self.%s.data;", g.plan.Type, g.plan.Type, g.plan.ListName)
	w.Line("for (NSUInteger i = 0; i < count; ++i) {")
	w.Line("  dataSize += computeEnumSizeNoTag(values[i]);")
	w.Line("}")
	w.Line("size_ += dataSize;")
	if g.field.IsPacked() {
		w.Line("if (count > 0) {")
		w.Linef("  size_ += %d;", g.plan.TagSize)
		w.Line("  size_ += computeRawVarint32Size(dataSize);")
		w.Line("}")
		w.Linef("self.%sMemoizedSerializedSize = dataSize;", g.plan.Name)
	} else {
		w.Linef("size_ += %d * (int32_t)count;", g.plan.TagSize)
	}
	w.Outdent()
	w.Line("}")
}

func (g *repeatedEnumField) Dump(w *writer.Writer) {
	w.Linef("const NSUInteger %sCount = self.%s.count;", g.plan.ListName, g.plan.ListName)
	w.Linef("if (%sCount > 0) {", g.plan.ListName)
	w.Indent()
	w.Linef("const %s *%sValues = (const %s *)self.%s.data;", g.plan.Type, g.plan.ListName, g.plan.Type, g.plan.ListName)
	w.Linef("for (NSUInteger i = 0; i < %sCount; ++i) {", g.plan.ListName)
	w.Linef(`  [output appendFormat:@"%%@%%@: %%d\n", indent, @"%s", %sValues[i]];`, g.plan.Name, g.plan.ListName)
	w.Line("}")
	w.Outdent()
	w.Line("}")
}

func (g *repeatedEnumField) Equality(w *writer.Writer) {
	w.Linef("(self.%s == otherMessage.%s || [self.%s isEqualToArray:otherMessage.%s]) &&",
		g.plan.ListName, g.plan.ListName, g.plan.ListName, g.plan.ListName)
}

func (g *repeatedEnumField) Hash(w *writer.Writer) {
	w.Linef("const NSUInteger %sCount = self.%s.count;", g.plan.ListName, g.plan.ListName)
	w.Linef("if (%sCount > 0) {", g.plan.ListName)
	w.Indent()
	w.Linef("const %s *%sValues = (const %s *)self.%s.data;", g.plan.Type, g.plan.ListName, g.plan.Type, g.plan.ListName)
	w.Linef("for (NSUInteger i = 0; i < %sCount; ++i) {", g.plan.ListName)
	w.Linef("  hashCode = hashCode * 31 + %sValues[i];", g.plan.ListName)
	w.Line("}")
	w.Outdent()
	w.Line("}")
}
