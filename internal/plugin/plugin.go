// Package plugin adapts the generator to the protoc plugin contract: a
// CodeGeneratorRequest on stdin, a CodeGeneratorResponse on stdout.
package plugin

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/objcpb/protoc-gen-objc/internal/gen"
	"github.com/objcpb/protoc-gen-objc/internal/schema"
)

// Exec reads one request from r, generates, and writes the response to w.
// Generation failures travel inside the response per the plugin contract;
// only transport problems surface as errors.
func Exec(r io.Reader, w io.Writer, log zerolog.Logger) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(in, req); err != nil {
		return fmt.Errorf("unmarshal request: %w", err)
	}

	resp := Generate(req, log)

	out, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

// Generate runs the generator over one request. Option and schema errors
// are reported through the response error field before any file is added,
// so a failing run produces no output at all.
func Generate(req *pluginpb.CodeGeneratorRequest, log zerolog.Logger) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{}

	opts, err := ParseParameter(req.GetParameter())
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}

	set, err := schema.Parse(req.GetProtoFile())
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}

	targets := make(map[string]bool, len(req.GetFileToGenerate()))
	for _, name := range req.GetFileToGenerate() {
		targets[name] = true
	}

	var outputs []gen.OutputFile
	for _, f := range set.Files {
		if !targets[f.Name] {
			continue
		}
		files := gen.NewFileGenerator(f, opts).Generate()
		log.Debug().
			Str("file", f.Name).
			Int("outputs", len(files)).
			Msg("generated schema file")
		outputs = append(outputs, files...)
	}

	if opts.OutputListFile != "" {
		outputs = append(outputs, gen.OutputFile{
			Name:    opts.OutputListFile,
			Content: gen.ManifestContent(outputs),
		})
	}

	for _, of := range outputs {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(of.Name),
			Content: proto.String(of.Content),
		})
	}
	return resp
}

// ParseParameter decodes the protoc parameter string, a comma-separated
// key=value list. Class-list values separate entries with semicolons so
// they survive the comma split. An unknown key fails the whole run.
func ParseParameter(param string) (gen.Options, error) {
	opts := gen.Options{
		PartialMergeClasses:  map[string]bool{},
		BuilderGetterClasses: map[string]bool{},
		BuilderClearClasses:  map[string]bool{},
	}
	if param == "" {
		return opts, nil
	}

	for _, pair := range strings.Split(param, ",") {
		key, value, _ := strings.Cut(pair, "=")
		switch key {
		case "prefix":
			opts.Prefix = value
		case "divide_headers":
			opts.DivideHeaders = value == "" || value == "true"
		case "output_list_file":
			opts.OutputListFile = value
		case "partial_merge":
			addClasses(opts.PartialMergeClasses, value)
		case "builder_getters":
			addClasses(opts.BuilderGetterClasses, value)
		case "builder_clears":
			addClasses(opts.BuilderClearClasses, value)
		default:
			return gen.Options{}, fmt.Errorf("unknown generator option %q", key)
		}
	}
	return opts, nil
}

func addClasses(set map[string]bool, value string) {
	for _, cls := range strings.Split(value, ";") {
		if cls != "" {
			set[cls] = true
		}
	}
}
