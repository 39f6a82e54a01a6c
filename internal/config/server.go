package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket front end.
type ServerConfig struct {
	Addr         string
	AllowOrigins string

	// Websocket buffers
	ReadBufferSize  int
	WriteBufferSize int

	// MaxGames caps the number of live games; 0 means unlimited.
	MaxGames int

	// IdleTimeout evicts games untouched for this long; 0 disables eviction.
	IdleTimeout time.Duration
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		AllowOrigins:    "*",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("listen address is empty: %w", errors.ErrInvalidConfig)
	}
	if s.ReadBufferSize <= 0 || s.WriteBufferSize <= 0 {
		return fmt.Errorf("websocket buffer sizes (%d, %d) must be positive: %w",
			s.ReadBufferSize, s.WriteBufferSize, errors.ErrInvalidConfig)
	}
	if s.MaxGames < 0 {
		return fmt.Errorf("max games (%d) is negative: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	if s.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout (%v) is negative: %w", s.IdleTimeout, errors.ErrInvalidConfig)
	}
	return nil
}
