package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration file into the provided struct.
// Unlike Load, results are not cached: file-based configuration is expected
// to be read once at startup, and callers keep the returned value themselves.
//
// Fields resolved from the environment by Load can still be overridden by a
// file by calling Load first and LoadFile second.
func LoadFile[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingFile, err)
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return errors.Join(ErrParsingFile, err)
	}

	return nil
}
