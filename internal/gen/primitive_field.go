package gen

import (
	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// primitiveField generates fragments for non-repeated numeric, bool,
// string and bytes fields.
type primitiveField struct {
	field *schema.Field
	plan  *FieldPlan
}

func (g *primitiveField) Plan() *FieldPlan { return g.plan }

func (g *primitiveField) HasAccessorDecl(w *writer.Writer) {
	w.Linef("- (BOOL)has%s;", g.plan.CapitalizedName)
}

func (g *primitiveField) AccessorDecl(w *writer.Writer) {
	switch {
	case !g.plan.ReturnsPrimitive:
		w.Linef("@property (nonatomic, readonly)%s %s %s;", g.plan.StorageAttribute, g.plan.StorageType, g.plan.Name)
	case g.field.Kind == schema.KindBool:
		w.Linef("- (BOOL)%s;", g.plan.Name)
	default:
		w.Linef("@property (nonatomic, readonly) %s %s;", g.plan.StorageType, g.plan.Name)
	}
}

func (g *primitiveField) MemberDecls(w *writer.Writer) {}

func (g *primitiveField) BuilderMutatorDecls(w *writer.Writer) {
	w.Linef("- (%s_Builder*) set%s:(%s) value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
}

func (g *primitiveField) BuilderGetterDecls(w *writer.Writer) {
	w.Linef("- (%s) %s;", g.plan.StorageType, g.plan.Name)
	w.Linef("- (BOOL)has%s;", g.plan.CapitalizedName)
}

func (g *primitiveField) BuilderClearDecl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *primitiveField) PrivatePropertyDecls(w *writer.Writer) {
	w.Linef("@property (nonatomic, readwrite) BOOL has%s;", g.plan.CapitalizedName)
	if !g.plan.ReturnsPrimitive {
		w.Linef("@property (nonatomic, readwrite)%s %s %s;", g.plan.StorageAttribute, g.plan.StorageType, g.plan.Name)
	} else {
		w.Linef("@property (nonatomic, readwrite) %s %s;", g.plan.StorageType, g.plan.Name)
	}
}

func (g *primitiveField) SynthesizeDecls(w *writer.Writer) {
	// NSObject already declares -description, so the property must be
	// synthesized explicitly or the class fails to compile.
	if g.plan.Name == "description" {
		w.Line("@synthesize description;")
	}
}

func (g *primitiveField) InitDefaults(w *writer.Writer) {
	w.Linef("self.%s = %s;", g.plan.Name, g.plan.Default)
}

func (g *primitiveField) MemberImpls(w *writer.Writer) {}

func (g *primitiveField) BuilderMutatorImpls(w *writer.Writer) {
	w.Linef("- (%s_Builder*) set%s:(%s) value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
	w.Linef("  builder_result.has%s = YES;", g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = value;", g.plan.Name)
	w.Line("  return self;")
	w.Line("}")
}

func (g *primitiveField) BuilderGetterImpls(w *writer.Writer) {
	w.Linef("- (%s) %s {", g.plan.StorageType, g.plan.Name)
	w.Linef("  return builder_result.%s;", g.plan.Name)
	w.Line("}")
	w.Linef("- (BOOL)has%s {", g.plan.CapitalizedName)
	w.Linef("  return builder_result.has%s;", g.plan.CapitalizedName)
	w.Line("}")
}

func (g *primitiveField) BuilderClearImpl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.has%s = NO;", g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = %s;", g.plan.Name, g.plan.Default)
	w.Line("  return self;")
	w.Line("}")
}

func (g *primitiveField) MergeFrom(w *writer.Writer) {
	w.Linef("if (other.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [self set%s:other.%s];", g.plan.CapitalizedName, g.plan.Name)
	w.Line("}")
}

func (g *primitiveField) Parse(w *writer.Writer) {
	w.Linef("[self set%s:[input read%s]];", g.plan.CapitalizedName, g.plan.CapitalizedType)
}

func (g *primitiveField) Serialize(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [output write%s:%d value:self.%s];", g.plan.CapitalizedType, g.plan.Number, g.plan.Name)
	w.Line("}")
}

func (g *primitiveField) Size(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  size_ += compute%sSize(%d, self.%s);", g.plan.CapitalizedType, g.plan.Number, g.plan.Name)
	w.Line("}")
}

func (g *primitiveField) Dump(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef(`  [output appendFormat:@"%%@%%@: %%@\n", indent, @"%s", %s];`, g.plan.Name, boxValue(g.field.Kind, "self."+g.plan.Name))
	w.Line("}")
}

func (g *primitiveField) Equality(w *writer.Writer) {
	w.Linef("self.has%s == otherMessage.has%s &&", g.plan.CapitalizedName, g.plan.CapitalizedName)
	if g.plan.ReturnsPrimitive {
		w.Linef("(!self.has%s || self.%s == otherMessage.%s) &&", g.plan.CapitalizedName, g.plan.Name, g.plan.Name)
	} else {
		w.Linef("(!self.has%s || [self.%s isEqual:otherMessage.%s]) &&", g.plan.CapitalizedName, g.plan.Name, g.plan.Name)
	}
}

func (g *primitiveField) Hash(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  hashCode = hashCode * 31 + [%s hash];", boxValue(g.field.Kind, "self."+g.plan.Name))
	w.Line("}")
}

// repeatedPrimitiveField generates fragments for repeated numeric, bool,
// string and bytes fields. Scalar element kinds are stored in a typed
// PBAppendableArray; strings and bytes in an NSMutableArray.
type repeatedPrimitiveField struct {
	field *schema.Field
	plan  *FieldPlan
}

func (g *repeatedPrimitiveField) Plan() *FieldPlan { return g.plan }

func (g *repeatedPrimitiveField) HasAccessorDecl(w *writer.Writer) {}

func (g *repeatedPrimitiveField) AccessorDecl(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("@property (nonatomic, readonly, nullable) NSArray<%s*> * %s;", g.plan.Type, g.plan.Name)
	} else {
		w.Linef("@property (nonatomic, readonly, nullable) PBArray * %s;", g.plan.Name)
	}
}

func (g *repeatedPrimitiveField) MemberDecls(w *writer.Writer) {
	w.Linef("- (%s)%sAtIndex:(NSUInteger)index;", g.plan.StorageType, g.plan.Name)
}

func (g *repeatedPrimitiveField) BuilderMutatorDecls(w *writer.Writer) {
	w.Linef("- (%s_Builder *)add%s:(%s)value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
	if g.plan.IsObjectArray {
		w.Linef("- (%s_Builder *)set%sArray:(NSArray<%s*> *)array;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
	} else {
		w.Linef("- (%s_Builder *)set%sArray:(NSArray<NSNumber *> *)array;", g.plan.ClassName, g.plan.CapitalizedName)
	}
}

func (g *repeatedPrimitiveField) BuilderGetterDecls(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("- (NSMutableArray *)%s;", g.plan.Name)
	} else {
		w.Linef("- (PBAppendableArray *)%s;", g.plan.Name)
	}
}

func (g *repeatedPrimitiveField) BuilderClearDecl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *repeatedPrimitiveField) PrivatePropertyDecls(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("@property (strong) NSMutableArray * %s;", g.plan.ListName)
	} else {
		w.Linef("@property (strong) PBAppendableArray * %s;", g.plan.ListName)
	}
	if g.field.IsPacked() {
		w.Linef("@property (nonatomic) int32_t %sMemoizedSerializedSize;", g.plan.Name)
	}
}

func (g *repeatedPrimitiveField) SynthesizeDecls(w *writer.Writer) {}

func (g *repeatedPrimitiveField) InitDefaults(w *writer.Writer) {
	// Repeated storage stays unallocated until first write.
}

func (g *repeatedPrimitiveField) MemberImpls(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("- (NSArray *)%s {", g.plan.Name)
		w.Linef("  return self.%s;", g.plan.ListName)
		w.Line("}")
		w.Linef("- (%s)%sAtIndex:(NSUInteger)index {", g.plan.StorageType, g.plan.Name)
		w.Linef("  return self.%s[index];", g.plan.ListName)
		w.Line("}")
	} else {
		w.Linef("- (PBArray *)%s {", g.plan.Name)
		w.Linef("  return self.%s;", g.plan.ListName)
		w.Line("}")
		w.Linef("- (%s)%sAtIndex:(NSUInteger)index {", g.plan.StorageType, g.plan.Name)
		w.Linef("  return [self.%s %sAtIndex:index];", g.plan.ListName, g.plan.ArrayValueTypeName)
		w.Line("}")
	}
}

func (g *repeatedPrimitiveField) BuilderMutatorImpls(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("- (%s_Builder *)add%s:(%s)value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
		w.Linef("  if (builder_result.%s == nil) {", g.plan.ListName)
		w.Linef("    builder_result.%s = [[NSMutableArray alloc] init];", g.plan.ListName)
		w.Line("  }")
		w.Linef("  [builder_result.%s addObject:value];", g.plan.ListName)
		w.Line("  return self;")
		w.Line("}")
		w.Linef("- (%s_Builder *)set%sArray:(NSArray *)array {", g.plan.ClassName, g.plan.CapitalizedName)
		w.Linef("  builder_result.%s = [[NSMutableArray alloc] initWithArray:array];", g.plan.ListName)
		w.Line("  return self;")
		w.Line("}")
	} else {
		w.Linef("- (%s_Builder *)add%s:(%s)value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
		w.Linef("  if (builder_result.%s == nil) {", g.plan.ListName)
		w.Linef("    builder_result.%s = [PBAppendableArray arrayWithValueType:%s];", g.plan.ListName, g.plan.ArrayValueType)
		w.Line("  }")
		w.Linef("  [builder_result.%s add%s:value];", g.plan.ListName, g.plan.ArrayValueTypeNameCap)
		w.Line("  return self;")
		w.Line("}")
		w.Linef("- (%s_Builder *)set%sArray:(NSArray *)array {", g.plan.ClassName, g.plan.CapitalizedName)
		w.Linef("  builder_result.%s = [PBAppendableArray arrayWithArray:array valueType:%s];", g.plan.ListName, g.plan.ArrayValueType)
		w.Line("  return self;")
		w.Line("}")
	}
}

func (g *repeatedPrimitiveField) BuilderGetterImpls(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("- (NSMutableArray *) %s {", g.plan.Name)
	} else {
		w.Linef("- (PBAppendableArray *) %s {", g.plan.Name)
	}
	w.Linef("  return builder_result.%s;", g.plan.ListName)
	w.Line("}")
}

func (g *repeatedPrimitiveField) BuilderClearImpl(w *writer.Writer) {
	w.Linef("- (%s_Builder *)clear%s {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = nil;", g.plan.ListName)
	w.Line("  return self;")
	w.Line("}")
}

func (g *repeatedPrimitiveField) MergeFrom(w *writer.Writer) {
	w.Linef("if (other.%s.count > 0) {", g.plan.ListName)
	if g.plan.IsObjectArray {
		w.Linef("  builder_result.%s = [[NSMutableArray alloc] initWithArray:other.%s];", g.plan.ListName, g.plan.ListName)
	} else {
		w.Linef("  builder_result.%s = [other.%s copy];", g.plan.ListName, g.plan.ListName)
	}
	w.Line("}")
}

func (g *repeatedPrimitiveField) Parse(w *writer.Writer) {
	if g.field.IsPacked() {
		w.Line("int32_t length = [input readRawVarint32];")
		w.Line("int32_t limit = [input pushLimit:length];")
		w.Linef("if (builder_result.%s == nil) {", g.plan.ListName)
		w.Linef("  builder_result.%s = [PBAppendableArray arrayWithValueType:%s];", g.plan.ListName, g.plan.ArrayValueType)
		w.Line("}")
		w.Line("while (input.bytesUntilLimit > 0) {")
		w.Linef("  [builder_result.%s add%s:[input read%s]];", g.plan.ListName, g.plan.ArrayValueTypeNameCap, g.plan.CapitalizedType)
		w.Line("}")
		w.Line("[input popLimit:limit];")
	} else {
		w.Linef("[self add%s:[input read%s]];", g.plan.CapitalizedName, g.plan.CapitalizedType)
	}
}

func (g *repeatedPrimitiveField) Serialize(w *writer.Writer) {
	if g.plan.IsObjectArray {
		w.Linef("for (%s *element in self.%s) {", g.plan.Type, g.plan.ListName)
		w.Linef("  [output write%s:%d value:element];", g.plan.CapitalizedType, g.plan.Number)
		w.Line("}")
		return
	}
	w.Linef("const NSUInteger %sCount = self.%s.count;", g.plan.ListName, g.plan.ListName)
	w.Linef("if (%sCount > 0) {", g.plan.ListName)
	w.Indent()
	w.Linef("const %s *values = (const %s *)self.%s.data;", g.plan.StorageType, g.plan.StorageType, g.plan.ListName)
	if g.field.IsPacked() {
		w.Linef("[output writeRawVarint32:%d];", g.plan.Tag)
		w.Linef("[output writeRawVarint32:self.%sMemoizedSerializedSize];", g.plan.Name)
		w.Linef("for (NSUInteger i = 0; i < %sCount; ++i) {", g.plan.ListName)
		w.Linef("  [output write%sNoTag:values[i]];", g.plan.CapitalizedType)
		w.Line("}")
	} else {
		w.Linef("for (NSUInteger i = 0; i < %sCount; ++i) {", g.plan.ListName)
		w.Linef("  [output write%s:%d value:values[i]];", g.plan.CapitalizedType, g.plan.Number)
		w.Line("}")
	}
	w.Outdent()
	w.Line("}")
}

func (g *repeatedPrimitiveField) Size(w *writer.Writer) {
	w.Line("{")
	w.Indent()
	w.Line("int32_t dataSize = 0;")
	w.Linef("const NSUInteger count = self.%s.count;", g.plan.ListName)
	switch {
	case g.plan.IsObjectArray:
		w.Linef("for (%s *element in self.%s) {", g.plan.Type, g.plan.ListName)
		w.Linef("  dataSize += compute%sSizeNoTag(element);", g.plan.CapitalizedType)
		w.Line("}")
	case g.plan.FixedSize < 0:
		w.Linef("const %s *values = (const %s *)self.%s.data;", g.plan.StorageType, g.plan.StorageType, g.plan.ListName)
		w.Line("for (NSUInteger i = 0; i < count; ++i) {")
		w.Linef("  dataSize += compute%sSizeNoTag(values[i]);", g.plan.CapitalizedType)
		w.Line("}")
	default:
		w.Linef("dataSize = %d * (int32_t)count;", g.plan.FixedSize)
	}
	w.Line("size_ += dataSize;")
	if g.field.IsPacked() {
		w.Line("if (count > 0) {")
		w.Linef("  size_ += %d;", g.plan.TagSize)
		w.Line("  size_ += computeInt32SizeNoTag(dataSize);")
		w.Line("}")
		w.Linef("self.%sMemoizedSerializedSize = dataSize;", g.plan.Name)
	} else {
		w.Linef("size_ += %d * (int32_t)count;", g.plan.TagSize)
	}
	w.Outdent()
	w.Line("}")
}

func (g *repeatedPrimitiveField) Dump(w *writer.Writer) {
	if g.plan.ReturnsPrimitive {
		w.Linef("NSUInteger %sCount = self.%s.count;", g.plan.ListName, g.plan.ListName)
		w.Linef("for (NSUInteger i = 0; i < %sCount; i++) {", g.plan.ListName)
		w.Linef(`  [output appendFormat:@"%%@%%@: %%@\n", indent, @"%s", %s];`, g.plan.Name,
			boxValue(g.field.Kind, "[self."+g.plan.ListName+" "+g.plan.ArrayValueTypeName+"AtIndex:i]"))
		w.Line("}")
	} else {
		w.Linef("for (%s *element in self.%s) {", g.plan.Type, g.plan.ListName)
		w.Linef(`  [output appendFormat:@"%%@%%@: %%@\n", indent, @"%s", element];`, g.plan.Name)
		w.Line("}")
	}
}

func (g *repeatedPrimitiveField) Equality(w *writer.Writer) {
	w.Linef("(self.%s == otherMessage.%s || [self.%s isEqualToArray:otherMessage.%s]) &&",
		g.plan.ListName, g.plan.ListName, g.plan.ListName, g.plan.ListName)
}

func (g *repeatedPrimitiveField) Hash(w *writer.Writer) {
	if g.plan.ReturnsPrimitive {
		w.Linef("NSUInteger %sCount = self.%s.count;", g.plan.ListName, g.plan.ListName)
		w.Linef("for (NSUInteger i = 0; i < %sCount; i++) {", g.plan.ListName)
		w.Linef("  hashCode = hashCode * 31 + [%s hash];",
			boxValue(g.field.Kind, "[self."+g.plan.ListName+" "+g.plan.ArrayValueTypeName+"AtIndex:i]"))
		w.Line("}")
	} else {
		w.Linef("for (%s *element in self.%s) {", g.plan.Type, g.plan.ListName)
		w.Line("  hashCode = hashCode * 31 + [element hash];")
		w.Line("}")
	}
}
