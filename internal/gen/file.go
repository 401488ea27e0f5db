package gen

import (
	"fmt"
	"path"
	"strings"

	"github.com/objcpb/protoc-gen-objc/internal/schema"
	"github.com/objcpb/protoc-gen-objc/internal/gen/writer"
)

// Options control one generation run. The class-gated sets name generated
// classes that opt into the optional builder surface; partial merge implies
// builder getters and clears because the patch loop calls them.
type Options struct {
	Prefix         string // class-name prefix applied to every generated type
	DivideHeaders  bool   // one declaration file per top-level message
	OutputListFile string // when set, emit a newline-separated manifest

	PartialMergeClasses  map[string]bool
	BuilderGetterClasses map[string]bool
	BuilderClearClasses  map[string]bool
}

func (o Options) partialMerge(class string) bool   { return o.PartialMergeClasses[class] }
func (o Options) builderGetters(class string) bool { return o.BuilderGetterClasses[class] }
func (o Options) builderClears(class string) bool  { return o.BuilderClearClasses[class] }

// OutputFile is one generated file, named relative to the output root.
type OutputFile struct {
	Name    string
	Content string
}

// FileGenerator emits the generated units for one schema file: a header and
// an implementation file, or several headers when divide-headers is on.
type FileGenerator struct {
	file *schema.File
	opts Options
}

func NewFileGenerator(f *schema.File, opts Options) *FileGenerator {
	return &FileGenerator{file: f, opts: opts}
}

// stripProto removes the schema file extension from a path.
func stripProto(name string) string {
	return strings.TrimSuffix(name, ".proto")
}

// baseName is the schema file name without directory or extension.
func (g *FileGenerator) baseName() string {
	return stripProto(path.Base(g.file.Name))
}

// RootClassName is the per-file registry class holding extension setup.
func (g *FileGenerator) RootClassName() string {
	return g.opts.Prefix + underscoresToCapitalizedCamelCase(g.baseName()) + "Root"
}

// HeaderName is the main declaration file name.
func (g *FileGenerator) HeaderName() string { return stripProto(g.file.Name) + ".pb.h" }

// SourceName is the implementation file name.
func (g *FileGenerator) SourceName() string { return stripProto(g.file.Name) + ".pb.m" }

// Generate renders every output file for the schema file.
func (g *FileGenerator) Generate() []OutputFile {
	var out []OutputFile
	if g.opts.DivideHeaders {
		for _, m := range g.file.Messages {
			mg := NewMessageGenerator(m, g.opts)
			w := newUnitWriter()
			g.writeGeneratedBanner(w)
			w.Linef("#import %q", path.Base(g.HeaderName()))
			w.BlankLine()
			mg.GenerateHeader(w)
			out = append(out, OutputFile{
				Name:    path.Join(path.Dir(g.file.Name), mg.ClassName()+".h"),
				Content: w.String(),
			})
		}
	}
	out = append(out, OutputFile{Name: g.HeaderName(), Content: g.generateHeader()})
	out = append(out, OutputFile{Name: g.SourceName(), Content: g.generateSource()})
	return out
}

func newUnitWriter() *writer.Writer {
	return writer.NewWriter("  ")
}

func (g *FileGenerator) writeGeneratedBanner(w *writer.Writer) {
	w.Line("// Generated by the protocol buffer compiler. DO NOT EDIT!")
	w.Linef("// source: %s", g.file.Name)
	w.BlankLine()
}

func (g *FileGenerator) generateHeader() string {
	w := newUnitWriter()
	g.writeGeneratedBanner(w)
	w.Line("#import <ProtocolBuffers/ProtocolBuffers.h>")
	w.BlankLine()

	g.writeForwardDecls(w)

	// C enums cannot nest, so nested enum types surface here alongside the
	// top-level ones.
	for _, e := range g.collectEnums() {
		NewEnumGenerator(e, g.opts.Prefix).GenerateHeader(w)
	}

	w.Linef("@interface %s : NSObject", g.RootClassName())
	w.Line("+ (PBExtensionRegistry*) extensionRegistry;")
	w.Line("+ (void) registerAllExtensions:(PBMutableExtensionRegistry*) registry;")
	w.Line("@end")
	w.BlankLine()

	// In divide-headers mode each top-level message lives in its own unit
	// importing this one, so the shared header stops here.
	if !g.opts.DivideHeaders {
		for _, m := range g.file.Messages {
			NewMessageGenerator(m, g.opts).GenerateHeader(w)
		}
	}

	return w.String()
}

func (g *FileGenerator) generateSource() string {
	w := newUnitWriter()
	g.writeGeneratedBanner(w)
	w.Linef("#import %q", path.Base(g.HeaderName()))
	w.BlankLine()

	w.Linef("@implementation %s", g.RootClassName())
	w.Line("static PBExtensionRegistry* extensionRegistry = nil;")
	w.Line("+ (PBExtensionRegistry*) extensionRegistry {")
	w.Line("  return extensionRegistry;")
	w.Line("}")
	w.BlankLine()
	w.Line("+ (void) initialize {")
	w.Linef("  if (self == [%s class]) {", g.RootClassName())
	w.Line("    PBMutableExtensionRegistry* registry = [PBMutableExtensionRegistry registry];")
	w.Line("    [self registerAllExtensions:registry];")
	w.Line("    extensionRegistry = registry;")
	w.Line("  }")
	w.Line("}")
	w.Line("+ (void) registerAllExtensions:(PBMutableExtensionRegistry*) registry {")
	w.Line("}")
	w.Line("@end")
	w.BlankLine()

	for _, e := range g.collectEnums() {
		NewEnumGenerator(e, g.opts.Prefix).GenerateSource(w)
	}
	for _, m := range g.file.Messages {
		NewMessageGenerator(m, g.opts).GenerateSource(w)
	}

	return w.String()
}

// writeForwardDecls declares every generated message class and builder so
// interfaces can reference each other regardless of declaration order.
func (g *FileGenerator) writeForwardDecls(w *writer.Writer) {
	var names []string
	var walk func(ms []*schema.Message)
	walk = func(ms []*schema.Message) {
		for _, m := range ms {
			cls := MessageClassName(m, g.opts.Prefix)
			names = append(names, cls, cls+"_Builder")
			walk(m.Messages)
		}
	}
	walk(g.file.Messages)
	if len(names) == 0 {
		return
	}
	for _, n := range names {
		w.Linef("@class %s;", n)
	}
	w.BlankLine()
}

// collectEnums returns the file's enums in declaration order, nested types
// after their enclosing message's own enums.
func (g *FileGenerator) collectEnums() []*schema.Enum {
	var out []*schema.Enum
	out = append(out, g.file.Enums...)
	var walk func(ms []*schema.Message)
	walk = func(ms []*schema.Message) {
		for _, m := range ms {
			out = append(out, m.Enums...)
			walk(m.Messages)
		}
	}
	walk(g.file.Messages)
	return out
}

// ManifestContent renders the output_list_file manifest for a set of
// generated files.
func ManifestContent(files []OutputFile) string {
	var sb strings.Builder
	for _, f := range files {
		fmt.Fprintln(&sb, f.Name)
	}
	return sb.String()
}
