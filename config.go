package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	rootEnv       = "TIL_ROOT"
	configEnv     = "TIL_CONFIG"
	defaultConfig = ".til.toml"
)

// Where a config value came from.
const (
	sourceFlag    = "flag"
	sourceEnv     = "env"
	sourceFile    = "file"
	sourceWorkdir = "workdir"
)

type config struct {
	Root       string `json:"root" toml:"root"`
	Source     string `json:"source" toml:"-"`
	ConfigFile string `json:"config_file,omitempty" toml:"-"`
}

func getConfigFilename() (string, error) {
	if f := os.Getenv(configEnv); f != "" {
		return expandHome(f)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}
	return filepath.Join(home, defaultConfig), nil
}

// loadConfigFile decodes filename into cfg. A missing file leaves cfg as is.
func loadConfigFile(filename string, cfg *config) error {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file", "file", filename)
		return nil
	}
	if _, err := toml.DecodeFile(filename, cfg); err != nil {
		return fmt.Errorf("read config %s: %w", filename, err)
	}
	return nil
}

// loadConfig resolves the root directory: -root flag, then $TIL_ROOT, then
// the config file, then the working directory.
func loadConfig(rootFlag string) (config, error) {
	var cfg config
	switch {
	case rootFlag != "":
		cfg.Root, cfg.Source = rootFlag, sourceFlag
	case os.Getenv(rootEnv) != "":
		cfg.Root, cfg.Source = os.Getenv(rootEnv), sourceEnv
	default:
		f, err := getConfigFilename()
		if err != nil {
			return config{}, err
		}
		if err := loadConfigFile(f, &cfg); err != nil {
			return config{}, err
		}
		if cfg.Root != "" {
			cfg.Source, cfg.ConfigFile = sourceFile, f
			break
		}
		wd, err := os.Getwd()
		if err != nil {
			return config{}, fmt.Errorf("resolve working dir: %w", err)
		}
		cfg.Root, cfg.Source = wd, sourceWorkdir
	}

	root, err := expandHome(cfg.Root)
	if err != nil {
		return config{}, err
	}
	cfg.Root = root
	slog.Debug("resolved root", "root", cfg.Root, "source", cfg.Source)
	return cfg, nil
}
