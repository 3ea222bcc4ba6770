package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout. Pointer fields distinguish "absent"
// from zero so the file only overrides what it names.
type fileConfig struct {
	MaxDepth           *int     `yaml:"max_depth"`
	IntermediateSuffix *string  `yaml:"intermediate_suffix"`
	Tool               *string  `yaml:"tool"`
	TextureCommand     *string  `yaml:"texture_command"`
	GeometryCommand    *string  `yaml:"geometry_command"`
	TextureArgs        []string `yaml:"texture_args"`
	GeometryArgs       []string `yaml:"geometry_args"`
	OnFailure          *string  `yaml:"on_failure"`
	SkipUnreadable     *bool    `yaml:"skip_unreadable"`
}

// LoadFile reads a YAML config file at path and applies it over cfg.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	cfg.ConfigFile = path
	return nil
}

// LoadDefaultFile loads <root>/.glbcrunch.yaml when it exists. A missing
// file (or a root that is not a directory) is not an error; discovery
// reports a bad root on its own.
func LoadDefaultFile(cfg *Config, root string) error {
	path := filepath.Join(root, DefaultConfigName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil
		}
		return err
	}
	return LoadFile(cfg, path)
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.MaxDepth != nil {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if fc.IntermediateSuffix != nil {
		cfg.IntermediateSuffix = *fc.IntermediateSuffix
	}
	if fc.Tool != nil {
		cfg.Tool = *fc.Tool
	}
	if fc.TextureCommand != nil {
		cfg.TextureCommand = *fc.TextureCommand
	}
	if fc.GeometryCommand != nil {
		cfg.GeometryCommand = *fc.GeometryCommand
	}
	if fc.TextureArgs != nil {
		cfg.TextureArgs = fc.TextureArgs
	}
	if fc.GeometryArgs != nil {
		cfg.GeometryArgs = fc.GeometryArgs
	}
	if fc.OnFailure != nil {
		cfg.OnFailure = FailurePolicy(strings.ToLower(strings.TrimSpace(*fc.OnFailure)))
	}
	if fc.SkipUnreadable != nil {
		cfg.SkipUnreadable = *fc.SkipUnreadable
	}
}
