package gen

import (
	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// messageField generates fragments for non-repeated message and group
// fields. Parsing a second occurrence of a singular message field merges
// into the previously built value rather than overwriting it.
type messageField struct {
	field *schema.Field
	plan  *FieldPlan
}

func (g *messageField) Plan() *FieldPlan { return g.plan }

func (g *messageField) HasAccessorDecl(w *writer.Writer) {
	w.Linef("- (BOOL)has%s;", g.plan.CapitalizedName)
}

func (g *messageField) AccessorDecl(w *writer.Writer) {
	w.Linef("@property (nonatomic, readonly)%s %s %s;", g.plan.StorageAttribute, g.plan.StorageType, g.plan.Name)
}

func (g *messageField) MemberDecls(w *writer.Writer) {}

func (g *messageField) BuilderMutatorDecls(w *writer.Writer) {
	w.Linef("- (%s_Builder*) set%s:(%s) value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
	w.Linef("- (%s_Builder*) set%sBuilder:(%s_Builder*) builderForValue;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
	w.Linef("- (%s_Builder*) merge%s:(%s) value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
}

func (g *messageField) BuilderGetterDecls(w *writer.Writer) {
	w.Linef("- (%s) %s;", g.plan.StorageType, g.plan.Name)
	w.Linef("- (BOOL)has%s;", g.plan.CapitalizedName)
}

func (g *messageField) BuilderClearDecl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *messageField) PrivatePropertyDecls(w *writer.Writer) {
	w.Linef("@property (nonatomic, readwrite) BOOL has%s;", g.plan.CapitalizedName)
	w.Linef("@property (nonatomic, readwrite)%s %s %s;", g.plan.StorageAttribute, g.plan.StorageType, g.plan.Name)
}

func (g *messageField) SynthesizeDecls(w *writer.Writer) {}

func (g *messageField) InitDefaults(w *writer.Writer) {
	w.Linef("self.%s = [%s defaultInstance];", g.plan.Name, g.plan.Type)
}

func (g *messageField) MemberImpls(w *writer.Writer) {}

func (g *messageField) BuilderMutatorImpls(w *writer.Writer) {
	w.Linef("- (%s_Builder*) set%s:(%s) value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
	w.Linef("  builder_result.has%s = YES;", g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = value;", g.plan.Name)
	w.Line("  return self;")
	w.Line("}")
	w.Linef("- (%s_Builder*) set%sBuilder:(%s_Builder*) builderForValue {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
	w.Linef("  return [self set%s:[builderForValue build]];", g.plan.CapitalizedName)
	w.Line("}")
	w.Linef("- (%s_Builder*) merge%s:(%s) value {", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
	w.Linef("  if (builder_result.has%s &&", g.plan.CapitalizedName)
	w.Linef("      builder_result.%s != [%s defaultInstance]) {", g.plan.Name, g.plan.Type)
	w.Linef("    builder_result.%s =", g.plan.Name)
	w.Linef("      [[[%s builderWithPrototype:builder_result.%s] mergeFrom:value] buildPartial];", g.plan.Type, g.plan.Name)
	w.Line("  } else {")
	w.Linef("    builder_result.%s = value;", g.plan.Name)
	w.Line("  }")
	w.Linef("  builder_result.has%s = YES;", g.plan.CapitalizedName)
	w.Line("  return self;")
	w.Line("}")
}

func (g *messageField) BuilderGetterImpls(w *writer.Writer) {
	w.Linef("- (%s) %s {", g.plan.StorageType, g.plan.Name)
	w.Linef("  return builder_result.%s;", g.plan.Name)
	w.Line("}")
	w.Linef("- (BOOL)has%s {", g.plan.CapitalizedName)
	w.Linef("  return builder_result.has%s;", g.plan.CapitalizedName)
	w.Line("}")
}

func (g *messageField) BuilderClearImpl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.has%s = NO;", g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = [%s defaultInstance];", g.plan.Name, g.plan.Type)
	w.Line("  return self;")
	w.Line("}")
}

func (g *messageField) MergeFrom(w *writer.Writer) {
	w.Linef("if (other.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [self merge%s:other.%s];", g.plan.CapitalizedName, g.plan.Name)
	w.Line("}")
}

func (g *messageField) Parse(w *writer.Writer) {
	w.Linef("%s_Builder* subBuilder = [%s builder];", g.plan.Type, g.plan.Type)
	w.Linef("if (self.builder_result.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [subBuilder mergeFrom:self.builder_result.%s];", g.plan.Name)
	w.Line("}")
	if g.field.Kind == schema.KindGroup {
		w.Linef("[input readGroup:%d builder:subBuilder extensionRegistry:extensionRegistry];", g.plan.Number)
	} else {
		w.Line("[input readMessage:subBuilder extensionRegistry:extensionRegistry];")
	}
	w.Linef("[self set%s:[subBuilder buildPartial]];", g.plan.CapitalizedName)
}

func (g *messageField) Serialize(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  [output write%s:%d value:self.%s];", g.plan.GroupOrMessage, g.plan.Number, g.plan.Name)
	w.Line("}")
}

func (g *messageField) Size(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  size_ += compute%sSize(%d, self.%s);", g.plan.GroupOrMessage, g.plan.Number, g.plan.Name)
	w.Line("}")
}

func (g *messageField) Dump(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef(`  [output appendFormat:@"%%@%%@ {\n", indent, @"%s"];`, g.plan.Name)
	w.Linef("  [self.%s writeDescriptionTo:output", g.plan.Name)
	w.Line(`                       withIndent:[NSString stringWithFormat:@"%@  ", indent]];`)
	w.Line(`  [output appendFormat:@"%@}\n", indent];`)
	w.Line("}")
}

func (g *messageField) Equality(w *writer.Writer) {
	w.Linef("self.has%s == otherMessage.has%s &&", g.plan.CapitalizedName, g.plan.CapitalizedName)
	w.Linef("(!self.has%s || [self.%s isEqual:otherMessage.%s]) &&", g.plan.CapitalizedName, g.plan.Name, g.plan.Name)
}

func (g *messageField) Hash(w *writer.Writer) {
	w.Linef("if (self.has%s) {", g.plan.CapitalizedName)
	w.Linef("  hashCode = hashCode * 31 + [self.%s hash];", g.plan.Name)
	w.Line("}")
}

// repeatedMessageField generates fragments for repeated message and group
// fields. These are always unpacked; packed framing is not legal grammar
// for length-delimited kinds.
type repeatedMessageField struct {
	field *schema.Field
	plan  *FieldPlan
}

func (g *repeatedMessageField) Plan() *FieldPlan { return g.plan }

func (g *repeatedMessageField) HasAccessorDecl(w *writer.Writer) {}

func (g *repeatedMessageField) AccessorDecl(w *writer.Writer) {
	w.Linef("@property (nonatomic, readonly, nullable) NSArray<%s*> * %s;", g.plan.Type, g.plan.Name)
}

func (g *repeatedMessageField) MemberDecls(w *writer.Writer) {
	w.Linef("- (%s)%sAtIndex:(NSUInteger)index;", g.plan.StorageType, g.plan.Name)
}

func (g *repeatedMessageField) BuilderMutatorDecls(w *writer.Writer) {
	w.Linef("- (%s_Builder *)add%s:(%s)value;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.StorageType)
	w.Linef("- (%s_Builder *)set%sArray:(NSArray<%s*> *)array;", g.plan.ClassName, g.plan.CapitalizedName, g.plan.Type)
}

func (g *repeatedMessageField) BuilderGetterDecls(w *writer.Writer) {
	w.Linef("- (NSMutableArray *)%s;", g.plan.Name)
}

func (g *repeatedMessageField) BuilderClearDecl(w *writer.Writer) {
	w.Linef("- (%s_Builder*)clear%s;", g.plan.ClassName, g.plan.CapitalizedName)
}

func (g *repeatedMessageField) PrivatePropertyDecls(w *writer.Writer) {
	w.Linef("@property (nonatomic, readwrite) NSMutableArray * %s;", g.plan.ListName)
}

func (g *repeatedMessageField) SynthesizeDecls(w *writer.Writer) {}

func (g *repeatedMessageField) InitDefaults(w *writer.Writer) {}

func (g *repeatedMessageField) MemberImpls(w *writer.Writer) {
	w.Linef("- (NSArray *)%s {", g.plan.Name)
	w.Linef("  return self.%s;", g.plan.ListName)
	w.Line("}")
	w.Linef("- (%s)%sAtIndex:(NSUInteger)index {", g.plan.StorageType, g.plan.Name)
	w.Linef("  return self.%s[index];", g.plan.ListName)
	w.Line("}")
}

func (g *repeatedMessageField) BuilderMutatorImpls(w *writer.Writer) {
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
}

func (g *repeatedMessageField) BuilderGetterImpls(w *writer.Writer) {
	w.Linef("- (NSMutableArray *)%s {", g.plan.Name)
	w.Linef("  return builder_result.%s;", g.plan.ListName)
	w.Line("}")
}

func (g *repeatedMessageField) BuilderClearImpl(w *writer.Writer) {
	w.Linef("- (%s_Builder *)clear%s {", g.plan.ClassName, g.plan.CapitalizedName)
	w.Linef("  builder_result.%s = nil;", g.plan.ListName)
	w.Line("  return self;")
	w.Line("}")
}

func (g *repeatedMessageField) MergeFrom(w *writer.Writer) {
	w.Linef("if (other.%s.count > 0) {", g.plan.ListName)
	w.Linef("  builder_result.%s = [[NSMutableArray alloc] initWithArray:other.%s];", g.plan.ListName, g.plan.ListName)
	w.Line("}")
}

func (g *repeatedMessageField) Parse(w *writer.Writer) {
	w.Linef("%s_Builder* subBuilder = [%s builder];", g.plan.Type, g.plan.Type)
	if g.field.Kind == schema.KindGroup {
		w.Linef("[input readGroup:%d builder:subBuilder extensionRegistry:extensionRegistry];", g.plan.Number)
	} else {
		w.Line("[input readMessage:subBuilder extensionRegistry:extensionRegistry];")
	}
	w.Linef("[self add%s:[subBuilder buildPartial]];", g.plan.CapitalizedName)
}

func (g *repeatedMessageField) Serialize(w *writer.Writer) {
	w.Linef("for (%s *element in self.%s) {", g.plan.Type, g.plan.ListName)
	w.Linef("  [output write%s:%d value:element];", g.plan.GroupOrMessage, g.plan.Number)
	w.Line("}")
}

func (g *repeatedMessageField) Size(w *writer.Writer) {
	w.Linef("for (%s *element in self.%s) {", g.plan.Type, g.plan.ListName)
	w.Linef("  size_ += compute%sSize(%d, element);", g.plan.GroupOrMessage, g.plan.Number)
	w.Line("}")
}

func (g *repeatedMessageField) Dump(w *writer.Writer) {
	w.Linef("for (%s* element in self.%s) {", g.plan.Type, g.plan.ListName)
	w.Linef(`  [output appendFormat:@"%%@%%@ {\n", indent, @"%s"];`, g.plan.Name)
	w.Line("  [element writeDescriptionTo:output")
	w.Line(`                   withIndent:[NSString stringWithFormat:@"%@  ", indent]];`)
	w.Line(`  [output appendFormat:@"%@}\n", indent];`)
	w.Line("}")
}

func (g *repeatedMessageField) Equality(w *writer.Writer) {
	w.Linef("(self.%s == otherMessage.%s || [self.%s isEqualToArray:otherMessage.%s]) &&",
		g.plan.ListName, g.plan.ListName, g.plan.ListName, g.plan.ListName)
}

func (g *repeatedMessageField) Hash(w *writer.Writer) {
	w.Linef("for (%s* element in self.%s) {", g.plan.Type, g.plan.ListName)
	w.Line("  hashCode = hashCode * 31 + [element hash];")
	w.Line("}")
}
