// Package commands contains the CLI commands for the application
package commands

import (
	"time"
)

type Flags struct {
	LogLevel string

	Descriptor string        // compiled FileDescriptorSet path
	OutDir     string        // generation output root
	Parameter  string        // generator options, protoc parameter syntax
	Debounce   time.Duration // watch-mode settle window
}

type Controller struct {
	Flags *Flags
}
