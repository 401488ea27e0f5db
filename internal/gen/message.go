package gen

import (
	"sort"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// MessageGenerator emits the generated class and builder companion for one
// message type, recursing into nested types. Field fragments are emitted in
// two fixed orderings: type ordering for declaration layout, and numeric
// ordering (merged with ascending extension ranges) for everything the wire
// format touches.
type MessageGenerator struct {
	msg       *schema.Message
	opts      Options
	className string
	fields    []FieldGenerator // declaration order
}

// NewMessageGenerator builds the per-field generators once; they are reused
// across every emission call.
func NewMessageGenerator(m *schema.Message, opts Options) *MessageGenerator {
	g := &MessageGenerator{
		msg:       m,
		opts:      opts,
		className: MessageClassName(m, opts.Prefix),
	}
	for _, f := range m.Fields {
		g.fields = append(g.fields, ForField(f, opts.Prefix))
	}
	return g
}

// ClassName returns the generated Objective-C class name.
func (g *MessageGenerator) ClassName() string { return g.className }

// sortedByNumber returns the field generators in ascending field-number
// order, the ordering every wire-facing fragment must follow.
func (g *MessageGenerator) sortedByNumber() []FieldGenerator {
	out := make([]FieldGenerator, len(g.fields))
	copy(out, g.fields)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Plan().Number < out[j].Plan().Number
	})
	return out
}

// sortedByType returns the field generators in declaration-layout order:
// repeated fields last, and bool fields first among the rest so they pack
// in with the has-flag bitfields, then by kind.
func (g *MessageGenerator) sortedByType() []FieldGenerator {
	type entry struct {
		gen   FieldGenerator
		field *schema.Field
	}
	entries := make([]entry, len(g.fields))
	for i, fg := range g.fields {
		entries[i] = entry{fg, g.msg.Fields[i]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].field, entries[j].field
		if a.Repeated() != b.Repeated() {
			return b.Repeated()
		}
		if a.Kind == schema.KindBool && b.Kind != schema.KindBool {
			return true
		}
		if a.Kind != schema.KindBool && b.Kind == schema.KindBool {
			return false
		}
		return a.Kind < b.Kind
	})
	out := make([]FieldGenerator, len(entries))
	for i, e := range entries {
		out[i] = e.gen
	}
	return out
}

// forEachInWireOrder walks the numeric-ordered fields and the ascending
// extension ranges with a two-pointer merge, visiting whichever of the two
// has the lower starting number next.
func (g *MessageGenerator) forEachInWireOrder(fieldFn func(FieldGenerator), rangeFn func(schema.ExtensionRange)) {
	fields := g.sortedByNumber()
	ranges := g.msg.ExtensionRanges
	for i, j := 0, 0; i < len(fields) || j < len(ranges); {
		switch {
		case i == len(fields):
			rangeFn(ranges[j])
			j++
		case j == len(ranges):
			fieldFn(fields[i])
			i++
		case fields[i].Plan().Number < ranges[j].Start:
			fieldFn(fields[i])
			i++
		default:
			rangeFn(ranges[j])
			j++
		}
	}
}

func (g *MessageGenerator) baseClass() string {
	if g.msg.Extensible() {
		return "PBExtendableMessage"
	}
	return "PBGeneratedMessage"
}

// GenerateHeader emits the message's declaration unit: the class interface,
// nested message interfaces and the builder interface.
func (g *MessageGenerator) GenerateHeader(w *writer.Writer) {
	w.Linef("@interface %s : %s", g.className, g.baseClass())

	for _, fg := range g.sortedByType() {
		fg.HasAccessorDecl(w)
	}
	for _, fg := range g.sortedByType() {
		fg.AccessorDecl(w)
	}
	for _, fg := range g.fields {
		fg.MemberDecls(w)
	}

	w.Linef("- (%s_Builder*) builder;", g.className)
	w.Linef("+ (%s_Builder*) builder;", g.className)
	w.Linef("+ (%s_Builder*) builderWithPrototype:(%s*) prototype;", g.className, g.className)
	w.Linef("- (%s_Builder*) toBuilder;", g.className)
	w.Line("@end")
	w.BlankLine()

	for _, nested := range g.msg.Messages {
		NewMessageGenerator(nested, g.opts).GenerateHeader(w)
	}

	g.generateBuilderHeader(w)
}

func (g *MessageGenerator) generateBuilderHeader(w *writer.Writer) {
	w.Linef("@interface %s_Builder : %s_Builder", g.className, g.baseClass())
	w.BlankLine()
	w.Linef("- (%s*) defaultInstance;", g.className)
	w.BlankLine()
	w.Linef("- (%s*) build;", g.className)
	w.Linef("- (%s*) buildPartial;", g.className)
	w.BlankLine()
	w.Linef("- (%s_Builder*) mergeFrom:(%s*) other;", g.className, g.className)
	w.Linef("- (%s_Builder*) mergeFromCodedInputStream:(PBCodedInputStream*) input extensionRegistry:(PBExtensionRegistry*) extensionRegistry;", g.className)

	if g.opts.partialMerge(g.className) {
		w.Linef("- (%s_Builder*) partiallyMergeFrom:(%s*) other fieldIDs:(NSSet <NSNumber *> *)fieldIDs;", g.className, g.className)
	}

	for _, fg := range g.fields {
		w.BlankLine()
		if g.opts.partialMerge(g.className) || g.opts.builderGetters(g.className) {
			fg.BuilderGetterDecls(w)
		}
		if g.opts.builderClears(g.className) {
			fg.BuilderClearDecl(w)
		}
		fg.BuilderMutatorDecls(w)
	}
	w.Line("@end")
	w.BlankLine()
}

// GenerateSource emits the message's definition unit: class extension,
// implementation, nested message implementations and the builder
// implementation.
func (g *MessageGenerator) GenerateSource(w *writer.Writer) {
	w.Linef("@interface %s ()", g.className)
	for _, fg := range g.sortedByType() {
		fg.PrivatePropertyDecls(w)
	}
	w.Line("@end")
	w.BlankLine()

	w.Linef("@implementation %s", g.className)
	w.BlankLine()

	for _, fg := range g.fields {
		fg.SynthesizeDecls(w)
	}

	w.Line("- (id) init {")
	w.Line("  if ((self = [super init])) {")
	w.Indent()
	w.Indent()
	for _, fg := range g.fields {
		fg.InitDefaults(w)
	}
	w.Outdent()
	w.Outdent()
	w.Line("  }")
	w.Line("  return self;")
	w.Line("}")

	for _, fg := range g.fields {
		fg.MemberImpls(w)
	}

	g.generateIsInitialized(w)
	g.generateSerialize(w)
	g.generateSerializedSize(w)

	w.Linef("+ (%s_Builder*) builder {", g.className)
	w.Linef("  return [[%s_Builder alloc] init];", g.className)
	w.Line("}")
	w.Linef("+ (%s_Builder*) builderWithPrototype:(%s*) prototype {", g.className, g.className)
	w.Linef("  return [[%s builder] mergeFrom:prototype];", g.className)
	w.Line("}")
	w.Linef("- (%s_Builder*) builder {", g.className)
	w.Linef("  return [%s builder];", g.className)
	w.Line("}")
	w.Linef("- (%s_Builder*) toBuilder {", g.className)
	w.Linef("  return [%s builderWithPrototype:self];", g.className)
	w.Line("}")

	g.generateDescription(w)
	g.generateIsEqual(w)
	g.generateHash(w)

	w.Line("@end")
	w.BlankLine()

	for _, nested := range g.msg.Messages {
		NewMessageGenerator(nested, g.opts).GenerateSource(w)
	}

	g.generateBuilderSource(w)
}

// generateIsInitialized emits the required-field check: direct required
// fields first, then recursion into message-typed fields whose referenced
// types carry required fields per the closure.
func (g *MessageGenerator) generateIsInitialized(w *writer.Writer) {
	w.Line("- (BOOL) isInitialized {")
	w.Indent()

	for i, f := range g.msg.Fields {
		plan := g.fields[i].Plan()
		switch {
		case f.Required():
			w.Linef("if (!self.has%s) {", plan.CapitalizedName)
			w.Line("  return NO;")
			w.Line("}")
		case f.RequiredTag && f.Label == schema.LabelOptional:
			w.Linef("if (!self.has%s) {", plan.CapitalizedName)
			w.Line("  return NO;")
			w.Line("}")
		case f.RequiredTag && f.Repeated():
			w.Linef("if (!self.%s) {", plan.Name)
			w.Line("  return NO;")
			w.Line("}")
		}
	}

	for i, f := range g.msg.Fields {
		if f.Message == nil || !schema.HasRequiredFields(f.Message) {
			continue
		}
		plan := g.fields[i].Plan()
		switch {
		case f.Required() || f.RequiredTag:
			w.Linef("if (!self.%s.isInitialized) {", plan.Name)
			w.Line("  return NO;")
			w.Line("}")
		case f.Repeated():
			w.Linef("for (%s* element in self.%s) {", plan.Type, plan.Name)
			w.Line("  if (!element.isInitialized) {")
			w.Line("    return NO;")
			w.Line("  }")
			w.Line("}")
		default:
			w.Linef("if (self.has%s) {", plan.CapitalizedName)
			w.Linef("  if (!self.%s.isInitialized) {", plan.Name)
			w.Line("    return NO;")
			w.Line("  }")
			w.Line("}")
		}
	}

	if g.msg.Extensible() {
		w.Line("if (!self.extensionsAreInitialized) {")
		w.Line("  return NO;")
		w.Line("}")
	}

	w.Outdent()
	w.Line("  return YES;")
	w.Line("}")
}

func (g *MessageGenerator) generateSerialize(w *writer.Writer) {
	w.Line("- (void) writeToCodedOutputStream:(PBCodedOutputStream*) output {")
	w.Indent()

	g.forEachInWireOrder(
		func(fg FieldGenerator) { fg.Serialize(w) },
		func(r schema.ExtensionRange) {
			w.Line("[self writeExtensionsToCodedOutputStream:output")
			w.Linef("                                    from:%d", r.Start)
			w.Linef("                                      to:%d];", r.End)
		})

	if g.msg.MessageSet {
		w.Line("[self.unknownFields writeAsMessageSetTo:output];")
	} else {
		w.Line("[self.unknownFields writeToCodedOutputStream:output];")
	}

	w.Outdent()
	w.Line("}")
}

func (g *MessageGenerator) generateSerializedSize(w *writer.Writer) {
	w.Line("- (int32_t) serializedSize {")
	w.Line("  int32_t size_ = memoizedSerializedSize;")
	w.Line("  if (size_ != -1) {")
	w.Line("    return size_;")
	w.Line("  }")
	w.Newline()
	w.Line("  size_ = 0;")
	w.Indent()

	for _, fg := range g.sortedByNumber() {
		fg.Size(w)
	}

	if g.msg.Extensible() {
		w.Line("size_ += [self extensionsSerializedSize];")
	}
	if g.msg.MessageSet {
		w.Line("size_ += self.unknownFields.serializedSizeAsMessageSet;")
	} else {
		w.Line("size_ += self.unknownFields.serializedSize;")
	}

	w.Outdent()
	w.Line("  memoizedSerializedSize = size_;")
	w.Line("  return size_;")
	w.Line("}")
}

func (g *MessageGenerator) generateDescription(w *writer.Writer) {
	w.Line("- (void) writeDescriptionTo:(NSMutableString*) output withIndent:(NSString*) indent {")
	w.Indent()

	g.forEachInWireOrder(
		func(fg FieldGenerator) { fg.Dump(w) },
		func(r schema.ExtensionRange) {
			w.Line("[self writeExtensionDescriptionToMutableString:(NSMutableString*)output")
			w.Linef("                                          from:%d", r.Start)
			w.Linef("                                            to:%d", r.End)
			w.Line("                                    withIndent:indent];")
		})

	w.Line("[self.unknownFields writeDescriptionTo:output withIndent:indent];")

	w.Outdent()
	w.Line("}")
}

func (g *MessageGenerator) generateIsEqual(w *writer.Writer) {
	w.Line("- (BOOL) isEqual:(id)other {")
	w.Indent()

	w.Line("if (other == self) {")
	w.Line("  return YES;")
	w.Line("}")
	w.Linef("if (![other isKindOfClass:[%s class]]) {", g.className)
	w.Line("  return NO;")
	w.Line("}")
	w.Linef("%s *otherMessage = other;", g.className)

	w.Line("return")
	w.Indent()
	w.Indent()

	g.forEachInWireOrder(
		func(fg FieldGenerator) { fg.Equality(w) },
		func(r schema.ExtensionRange) {
			w.Linef("[self isEqualExtensionsInOther:otherMessage from:%d to:%d] &&", r.Start, r.End)
		})

	w.Line("(self.unknownFields == otherMessage.unknownFields || (self.unknownFields != nil && [self.unknownFields isEqual:otherMessage.unknownFields]));")

	w.Outdent()
	w.Outdent()
	w.Outdent()
	w.Line("}")
}

func (g *MessageGenerator) generateHash(w *writer.Writer) {
	w.Line("- (NSUInteger) hash {")
	w.Indent()

	w.Line("NSUInteger hashCode = 7;")

	g.forEachInWireOrder(
		func(fg FieldGenerator) { fg.Hash(w) },
		func(r schema.ExtensionRange) {
			w.Linef("hashCode = hashCode * 31 + [self hashExtensionsFrom:%d to:%d];", r.Start, r.End)
		})

	w.Line("hashCode = hashCode * 31 + [self.unknownFields hash];")
	w.Line("return hashCode;")

	w.Outdent()
	w.Line("}")
}

func (g *MessageGenerator) generateBuilderSource(w *writer.Writer) {
	w.Linef("@interface %s_Builder()", g.className)
	w.Linef("@property (strong) %s* builder_result;", g.className)
	w.Line("@end")
	w.BlankLine()
	w.Linef("@implementation %s_Builder", g.className)
	w.Line("@synthesize builder_result;")

	w.Line("- (id) init {")
	w.Line("  if ((self = [super init])) {")
	w.Linef("    self.builder_result = [[%s alloc] init];", g.className)
	w.Line("  }")
	w.Line("  return self;")
	w.Line("}")

	w.Linef("- (%s*) internalGetResult {", g.baseClass())
	w.Line("  return builder_result;")
	w.Line("}")

	w.Linef("- (%s*) defaultInstance {", g.className)
	w.Linef("  return [%s defaultInstance];", g.className)
	w.Line("}")

	w.Linef("- (%s*) build {", g.className)
	w.Line("  [self checkInitialized];")
	w.Line("  return [self buildPartial];")
	w.Line("}")
	w.Linef("- (%s*) buildPartial {", g.className)
	w.Linef("  %s* returnMe = builder_result;", g.className)
	w.Line("  self.builder_result = nil;")
	w.Line("  return returnMe;")
	w.Line("}")

	g.generateBuilderMergeFrom(w)
	g.generateBuilderParsing(w)
	if g.opts.partialMerge(g.className) {
		g.generatePartialMerge(w)
	}

	for _, fg := range g.fields {
		fg.BuilderMutatorImpls(w)
		if g.opts.partialMerge(g.className) || g.opts.builderGetters(g.className) {
			fg.BuilderGetterImpls(w)
		}
		if g.opts.partialMerge(g.className) || g.opts.builderClears(g.className) {
			fg.BuilderClearImpl(w)
		}
	}

	w.Line("@end")
	w.BlankLine()
}

func (g *MessageGenerator) generateBuilderMergeFrom(w *writer.Writer) {
	w.Linef("- (%s_Builder*) mergeFrom:(%s*) other {", g.className, g.className)
	// The default instance has no fields set, so merging it is a no-op.
	w.Linef("  if (other == [%s defaultInstance]) {", g.className)
	w.Line("    return self;")
	w.Line("  }")
	w.Indent()

	for _, fg := range g.fields {
		fg.MergeFrom(w)
	}

	w.Outdent()
	if g.msg.Extensible() {
		w.Line("  [self mergeExtensionFields:other];")
	}
	w.Line("  [self mergeUnknownFields:other.unknownFields];")
	w.Line("  return self;")
	w.Line("}")
}

// generateBuilderParsing emits the wire parse loop: a dispatch table keyed
// by wire tag, one case per declared field in numeric order. Unrecognized
// tags, including invalid enum values re-tagged by field generators, fall
// through to the unknown-field accumulator; a decoded end-of-group stops
// the loop.
func (g *MessageGenerator) generateBuilderParsing(w *writer.Writer) {
	w.Linef("- (%s_Builder*) mergeFromCodedInputStream:(PBCodedInputStream*) input extensionRegistry:(PBExtensionRegistry*) extensionRegistry {", g.className)
	w.Indent()

	w.Line("PBUnknownFieldSet_Builder* unknownFields = [PBUnknownFieldSet builderWithUnknownFields:self.unknownFields];")
	w.Line("while (YES) {")
	w.Indent()

	w.Line("int32_t tag = [input readTag];")
	w.Line("switch (tag) {")
	w.Indent()

	w.Line("case 0:") // zero signals EOF / limit reached
	w.Line("  [self setUnknownFields:[unknownFields build]];")
	w.Line("  return self;")
	w.Line("default: {")
	w.Line("  if (![self parseUnknownField:input unknownFields:unknownFields extensionRegistry:extensionRegistry tag:tag]) {")
	w.Line("    [self setUnknownFields:[unknownFields build]];")
	w.Line("    return self;") // it's an endgroup tag
	w.Line("  }")
	w.Line("  break;")
	w.Line("}")

	for _, fg := range g.sortedByNumber() {
		w.Linef("case %d: {", fg.Plan().Tag)
		w.Indent()
		fg.Parse(w)
		w.Outdent()
		w.Line("  break;")
		w.Line("}")
	}

	w.Outdent()
	w.Outdent()
	w.Outdent()
	w.Line("    }") // switch (tag)
	w.Line("  }")   // while (YES)
	w.Line("}")
}

// generatePartialMerge emits the selective field-level patch: only fields
// named in the allow-list are copied, and listed fields absent on the
// source are cleared.
func (g *MessageGenerator) generatePartialMerge(w *writer.Writer) {
	w.BlankLine()
	w.Linef("- (%s_Builder*) partiallyMergeFrom:(%s*) other fieldIDs:(NSSet <NSNumber *> *)fieldIDs {", g.className, g.className)
	w.Indent()

	for _, fg := range g.sortedByNumber() {
		plan := fg.Plan()
		w.Linef("if ([fieldIDs containsObject:@%d]) {", plan.Number)
		w.Indent()
		if fieldForPlan(g.msg, plan).Repeated() {
			w.Linef("if (other.%s != nil) {", plan.Name)
			w.Indent()
			if plan.IsObjectArray {
				w.Linef("[self set%sArray:other.%s];", plan.CapitalizedName, plan.Name)
			} else {
				w.Linef("[self set%sArray:[other.%s toNumberArray]];", plan.CapitalizedName, plan.Name)
			}
			w.Outdent()
			w.Line("} else {")
			w.Linef("  [self clear%s];", plan.CapitalizedName)
			w.Line("}")
		} else {
			w.Linef("if ([other has%s]) {", plan.CapitalizedName)
			w.Linef("  [self set%s:other.%s];", plan.CapitalizedName, plan.Name)
			w.Line("} else {")
			w.Linef("  [self clear%s];", plan.CapitalizedName)
			w.Line("}")
		}
		w.Outdent()
		w.Line("}")
	}

	w.Line("return self;")
	w.Outdent()
	w.Line("}")
	w.BlankLine()
}

func fieldForPlan(m *schema.Message, plan *FieldPlan) *schema.Field {
	for _, f := range m.Fields {
		if f.Number == plan.Number {
			return f
		}
	}
	return nil
}

// ParseDispatchTags returns the wire tags registered in the parse dispatch
// table, in the order their cases are emitted.
func (g *MessageGenerator) ParseDispatchTags() []uint32 {
	var tags []uint32
	for _, fg := range g.sortedByNumber() {
		tags = append(tags, fg.Plan().Tag)
	}
	return tags
}
