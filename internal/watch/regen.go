package watch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/objcpb/protoc-gen-objc/internal/plugin"
)

// Regenerator turns a compiled FileDescriptorSet on disk into generated
// files under an output directory. It drives the same generation path the
// plugin mode uses, so watch mode and protoc mode cannot drift apart.
type Regenerator struct {
	DescriptorPath string
	OutDir         string
	Parameter      string // same syntax as the protoc parameter string
	Log            zerolog.Logger
}

// Run regenerates once from the current descriptor set.
func (r *Regenerator) Run() error {
	raw, err := os.ReadFile(r.DescriptorPath)
	if err != nil {
		return fmt.Errorf("read descriptor set: %w", err)
	}

	fds := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(raw, fds); err != nil {
		return fmt.Errorf("unmarshal descriptor set: %w", err)
	}

	req := &pluginpb.CodeGeneratorRequest{
		ProtoFile: fds.GetFile(),
		Parameter: proto.String(r.Parameter),
	}
	// Outside protoc there is no explicit target list; every file in the
	// set is generated.
	for _, fd := range fds.GetFile() {
		req.FileToGenerate = append(req.FileToGenerate, fd.GetName())
	}

	resp := plugin.Generate(req, r.Log)
	if resp.GetError() != "" {
		return fmt.Errorf("generation failed: %s", resp.GetError())
	}

	for _, f := range resp.GetFile() {
		dest := filepath.Join(r.OutDir, f.GetName())
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(dest, []byte(f.GetContent()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
	}

	r.Log.Info().
		Str("descriptor", r.DescriptorPath).
		Int("files", len(resp.GetFile())).
		Msg("regenerated")
	return nil
}
