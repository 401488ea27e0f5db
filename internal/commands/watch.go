package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/objcpb/protoc-gen-objc/internal/watch"
)

// Watch regenerates whenever the descriptor set changes, until cancelled.
func (c *Controller) Watch(ctx context.Context) error {
	r := &watch.Regenerator{
		DescriptorPath: c.Flags.Descriptor,
		OutDir:         c.Flags.OutDir,
		Parameter:      c.Flags.Parameter,
		Log:            log.Logger,
	}

	// Generate immediately so the output is current before the first event.
	if err := r.Run(); err != nil {
		log.Warn().Err(err).Msg("initial generation failed")
	}

	w, err := watch.NewWatcher(c.Flags.Descriptor, c.Flags.Debounce, func(path string) {
		if err := r.Run(); err != nil {
			log.Error().Err(err).Msg("regeneration failed")
		}
	}, log.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	log.Info().Str("descriptor", c.Flags.Descriptor).Msg("watching for changes")
	return w.Start(ctx)
}
