package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/lofidesk/internal/datapath"
)

// Source locates a config value in a file.
type Source struct {
	File   string
	Line   int
	Column int
}

// LoadResult is a loaded configuration plus where it came from.
type LoadResult struct {
	Config *Config
	// Path is the file that was read (or would have been, when Exists is false).
	Path    string
	Exists  bool
	Sources map[string]Source // YAML-path -> position in Path
}

const configFileName = "config.yaml"

// DefaultConfigPath returns <config dir>/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := datapath.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadWithSources reads the configuration from the standard location along
// with the file position of every key.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path over the defaults. A missing file yields defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	res := &LoadResult{
		Config:  DefaultConfig(),
		Path:    path,
		Sources: map[string]Source{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return res, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	res.Exists = true

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
	}
	res.Sources = indexSources(&doc, path)

	if err := decodeInto(data, res.Config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := res.Config.Validate(); err != nil {
		return nil, locate(err, res.Sources)
	}
	return res, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile validates cfg and writes it to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// decodeInto fills cfg from data, rejecting keys cfg does not declare. An
// empty document leaves cfg untouched.
func decodeInto(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// sourceIndex maps the dotted path of every value in a YAML document
// (window.width, tools[1].id) to its position.
type sourceIndex struct {
	file  string
	paths map[string]Source
}

func indexSources(doc *yaml.Node, file string) map[string]Source {
	idx := sourceIndex{file: file, paths: make(map[string]Source)}
	if doc != nil && doc.Kind == yaml.DocumentNode {
		for _, root := range doc.Content {
			idx.walk(root, "")
		}
	} else {
		idx.walk(doc, "")
	}
	return idx.paths
}

func (idx sourceIndex) mark(path string, n *yaml.Node) {
	idx.paths[path] = Source{File: idx.file, Line: n.Line, Column: n.Column}
}

func (idx sourceIndex) walk(n *yaml.Node, path string) {
	if n == nil {
		return
	}
	if path != "" {
		idx.mark(path, n)
	}
	switch n.Kind {
	case yaml.MappingNode:
		for i := 1; i < len(n.Content); i += 2 {
			key := n.Content[i-1].Value
			if path != "" {
				key = path + "." + key
			}
			idx.walk(n.Content[i], key)
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			idx.walk(item, path+"["+strconv.Itoa(i)+"]")
		}
	}
}

// locate fills in the file position of a validation failure when the
// offending key was set in the file.
func locate(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}
