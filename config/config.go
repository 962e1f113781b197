/*
Package config holds the configuration of a compiler run.

A configuration is read from a YAML file (usually uic.yaml, found by Find)
and may be overridden by the environment:

	UIC_EMBED_RESOURCES   "true" or "false"
	UIC_STYLE             name of the style
	UIC_INCLUDE_PATH      list of directories, separated like PATH

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uic/styles"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'uic.config'.
func tracer() tracing.Trace {
	return tracing.Select("uic.config")
}

// Names of the environment variables read by ApplyEnvironment.
const (
	EnvEmbedResources = "UIC_EMBED_RESOURCES"
	EnvStyle          = "UIC_STYLE"
	EnvIncludePath    = "UIC_INCLUDE_PATH"
)

// File names searched for by Find.
var FileNames = []string{"uic.yaml", "uic.yml"}

// CompilerConfiguration configures a compiler run.
type CompilerConfiguration struct {
	// EmbedResources selects whether images and fonts are embedded into the
	// output or referenced by their path.
	EmbedResources bool `yaml:"embed_resources"`

	// IncludePaths are searched for imported components and for styles.
	// Relative paths are relative to the configuration file.
	IncludePaths []string `yaml:"include_paths,omitempty"`

	// Style is the name of the style providing default property values.
	// Defaults to styles.DefaultStyleName.
	Style string `yaml:"style,omitempty"`

	// StyleSheets are additional CSS files, applied after the style.
	StyleSheets []string `yaml:"stylesheets,omitempty"`
}

// Default returns a configuration with all defaults set.
func Default() *CompilerConfiguration {
	c := &CompilerConfiguration{}
	c.setDefaults()
	return c
}

// Load reads and parses a configuration file.
func Load(path string) (*CompilerConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses configuration content. The path is used for error messages
// and to resolve relative paths.
func Parse(data []byte, path string) (*CompilerConfiguration, error) {
	var c CompilerConfiguration
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := c.validate(path); err != nil {
		return nil, err
	}
	c.makeAbsolute(filepath.Dir(path))
	c.setDefaults()
	tracer().Debugf("configuration %s: style %q, %d include paths", path, c.Style, len(c.IncludePaths))
	return &c, nil
}

// FromEnvironment returns the default configuration, overridden by the
// environment.
func FromEnvironment() (*CompilerConfiguration, error) {
	c := Default()
	if err := c.ApplyEnvironment(); err != nil {
		return nil, err
	}
	return c, nil
}

// Find searches for a configuration file starting from dir and walking up
// to parent directories. It returns the empty string if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ApplyEnvironment overrides settings with the environment variables which
// are set. An include path from the environment is searched first.
func (c *CompilerConfiguration) ApplyEnvironment() error {
	return c.applyLookup(os.LookupEnv)
}

func (c *CompilerConfiguration) applyLookup(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvEmbedResources); ok && v != "" {
		embed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s has incorrect value %q, must be either unset, 'true' or 'false'",
				EnvEmbedResources, v)
		}
		c.EmbedResources = embed
	}
	if v, ok := lookup(EnvStyle); ok && v != "" {
		c.Style = v
	}
	if v, ok := lookup(EnvIncludePath); ok && v != "" {
		var paths []string
		for _, p := range filepath.SplitList(v) {
			if p != "" {
				paths = append(paths, p)
			}
		}
		c.IncludePaths = append(paths, c.IncludePaths...)
	}
	return nil
}

// StyleLoader returns a loader finding styles in the include paths and
// adding the configured stylesheets.
func (c *CompilerConfiguration) StyleLoader() *styles.FileLoader {
	return &styles.FileLoader{
		Paths:  append([]string(nil), c.IncludePaths...),
		Sheets: append([]string(nil), c.StyleSheets...),
	}
}

func (c *CompilerConfiguration) validate(path string) error {
	for i, p := range c.IncludePaths {
		if p == "" {
			return fmt.Errorf("%s: include_paths[%d]: empty path", path, i)
		}
	}
	for i, s := range c.StyleSheets {
		if s == "" {
			return fmt.Errorf("%s: stylesheets[%d]: empty path", path, i)
		}
		if filepath.Ext(s) != ".css" {
			return fmt.Errorf("%s: stylesheets[%d]: %s is not a .css file", path, i, s)
		}
	}
	return nil
}

func (c *CompilerConfiguration) makeAbsolute(dir string) {
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, p := range c.IncludePaths {
		c.IncludePaths[i] = abs(p)
	}
	for i, s := range c.StyleSheets {
		c.StyleSheets[i] = abs(s)
	}
}

func (c *CompilerConfiguration) setDefaults() {
	if c.Style == "" {
		c.Style = styles.DefaultStyleName
	}
}
