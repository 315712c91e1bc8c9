package types

import (
	"errors"
	"time"
)

// Config holds repository and mirror parameters for Repository.Open.
type Config struct {
	DataDir        string        `json:"data_dir" yaml:"data_dir"`
	MirrorEndpoint string        `json:"mirror_endpoint" yaml:"mirror_endpoint"`
	MirrorTimeout  time.Duration `json:"mirror_timeout" yaml:"mirror_timeout"`
}

// Config validation errors.
var (
	ErrDataDirEmpty          = errors.New("data directory must not be empty")
	ErrMirrorTimeoutNegative = errors.New("mirror timeout must not be negative")
)

// Validate checks that the Config is well-formed. An empty MirrorEndpoint is
// allowed: the store then runs purely local with the mirror disabled.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.MirrorTimeout < 0 {
		return ErrMirrorTimeoutNegative
	}
	return nil
}
