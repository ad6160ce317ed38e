// Package config loads the YAML configuration shared by bwtserver and the
// bwt history command.
package config

import (
	"bwtnet/internal/ctxlog"
	"bwtnet/internal/db"
	"bwtnet/internal/server"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Server server.Config `yaml:"server"`
	// DB is optional; without a file the server keeps no results.
	DB  db.Config     `yaml:"db"`
	Log ctxlog.Config `yaml:"log"`
}

func Load(ctx context.Context, filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, fmt.Errorf("open %q: %w", filename, err)
	}
	defer ctxlog.Close(ctx, "config file", file)

	return Decode(file)
}

// Decode reads a config document, rejecting unknown keys.
func Decode(r io.Reader) (Config, error) {
	dec := yaml.NewDecoder(r, yaml.Strict())

	var config Config
	err := dec.Decode(&config)
	if err != nil {
		return Config{}, fmt.Errorf("yaml: %w", err)
	}

	return config, nil
}
