// Package config provides configuration for the chess rules server and the
// perft tool.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	Server *ServerConfig
	Perft  *PerftConfig

	Verbosity int // 0=errors only, 1=lifecycle, 2=every request

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server:     NewServerConfig(),
		Perft:      NewPerftConfig(),
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the writer that results are printed to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the writer that diagnostics are logged to.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Perft.Validate()
}
