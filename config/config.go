// Package config holds the application-level interpreter configuration.
//
// An Interpreter is built once from application input, either directly or
// from a YAML or TOML file, and is not modified afterwards:
//
//	# interpreter.yaml
//	argv: ["", "--verbose"]
//
//	cfg, err := config.Load("interpreter.yaml")
package config

import (
	"bytes"
	goerrors "errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/pyembed/errors"
)

// Placeholder marks a customized configuration. It has no fields yet.
type Placeholder struct{}

// Interpreter is the application-level interpreter configuration.
type Interpreter struct {
	// Placeholder is set when the user customized the configuration.
	// The native mapping does not exist yet; resolving a config with it set
	// fails with an unsupported-option error.
	Placeholder *Placeholder `yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`

	// Argv are the program arguments. Empty means a single empty argument.
	Argv []string `yaml:"argv,omitempty" toml:"argv,omitempty"`
}

// Default returns an uncustomized configuration.
func Default() *Interpreter {
	return &Interpreter{}
}

// Customized reports whether any user option is set.
func (c *Interpreter) Customized() bool {
	return c.Placeholder != nil
}

// Args returns the argument vector to install, never empty.
func (c *Interpreter) Args() []string {
	if len(c.Argv) == 0 {
		return []string{""}
	}
	return slices.Clone(c.Argv)
}

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.InvalidInput(errors.PhaseLoad, "unknown config extension "+filepath.Ext(path))
	}
}

// Load reads a config file, choosing the parser by extension.
func Load(path string) (*Interpreter, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound(errors.PhaseLoad, "config file", path)
		}
		return nil, errors.Load("read config", err)
	}
	return Parse(data, format)
}

// Parse decodes config data. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Interpreter, error) {
	cfg := Default()

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err := dec.Decode(cfg)
		if err != nil && !goerrors.Is(err, io.EOF) {
			return nil, errors.Load("parse yaml", err)
		}
		if err == nil {
			var extra yaml.Node
			switch err := dec.Decode(&extra); {
			case err == nil:
				return nil, errors.InvalidInput(errors.PhaseLoad, "config must be a single yaml document")
			case !goerrors.Is(err, io.EOF):
				return nil, errors.Load("parse yaml", err)
			}
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Load("parse toml", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.InvalidInput(errors.PhaseLoad, "unknown toml key "+undecoded[0].String())
		}
	default:
		return nil, errors.InvalidInput(errors.PhaseLoad, "unsupported format "+string(format))
	}

	return cfg, nil
}
