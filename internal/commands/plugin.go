package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/objcpb/protoc-gen-objc/internal/plugin"
)

// Plugin runs one protoc plugin exchange over stdin and stdout. Logging
// stays on stderr so the response stream remains clean.
func (c *Controller) Plugin(ctx context.Context) error {
	return plugin.Exec(os.Stdin, os.Stdout, log.Logger)
}
