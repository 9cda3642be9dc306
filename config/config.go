// Package config loads the optional TOML configuration file. Command line
// flags and environment variables take precedence over its values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultPath = "~/.config/cocov-actions/config.toml"

type Storage struct {
	Mode      string `toml:"mode"`
	LocalPath string `toml:"local_path"`
	S3Bucket  string `toml:"s3_bucket"`
}

type Config struct {
	Token   string  `toml:"token"`
	APIURL  string  `toml:"api_url"`
	Storage Storage `toml:"storage"`
}

// Load reads path. A missing file at the default location yields an empty
// Config; a missing file given explicitly is an error.
func Load(path string) (Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
	}

	resolved, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err = toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", resolved, err)
	}

	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	return cfg, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
