package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files that are not toml, yaml or json
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Candidates are the file names LoadGame looks for, in order
var Candidates = []string{"game.toml", "game.yaml", "game.yml", "game.json"}

// Loader loads game configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadFile loads name on top of the defaults. The format follows the
// extension.
func (l *Loader) LoadFile(name string) (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg := Default()
	if err := decode(name, data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return cfg, nil
}

// LoadGame loads the first of Candidates that exists
func (l *Loader) LoadGame() (*GameConfig, error) {
	for _, name := range Candidates {
		if _, err := fs.Stat(l.fsys, name); err != nil {
			continue
		}
		return l.LoadFile(name)
	}
	return nil, fmt.Errorf("failed to find game config in %s: %w", l.basePath, fs.ErrNotExist)
}

// LoadGameOrDefault loads the game config, falling back to the defaults
// when no file exists. Parse and validation errors are still returned.
func (l *Loader) LoadGameOrDefault() (*GameConfig, error) {
	cfg, err := l.LoadGame()
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func decode(name string, data []byte, cfg *GameConfig) error {
	switch path.Ext(name) {
	case ".toml":
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		return ErrUnsupportedFormat
	}
}
