package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/objcpb/protoc-gen-objc/internal/watch"
)

// Gen generates once from a compiled descriptor set, bypassing protoc.
func (c *Controller) Gen(ctx context.Context) error {
	r := &watch.Regenerator{
		DescriptorPath: c.Flags.Descriptor,
		OutDir:         c.Flags.OutDir,
		Parameter:      c.Flags.Parameter,
		Log:            log.Logger,
	}
	return r.Run()
}
