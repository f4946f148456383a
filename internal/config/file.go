package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// File mirrors the on-disk config document. Every field is optional.
type File struct {
	Mode          string     `yaml:"mode" hcl:"mode,optional"`
	Addr          string     `yaml:"addr" hcl:"addr,optional"`
	BasePath      string     `yaml:"base_path" hcl:"base_path,optional"`
	LogFormat     string     `yaml:"log_format" hcl:"log_format,optional"`
	LogLevel      string     `yaml:"log_level" hcl:"log_level,optional"`
	Title         string     `yaml:"title" hcl:"title,optional"`
	Notice        string     `yaml:"notice" hcl:"notice,optional"`
	InstanceTTL   string     `yaml:"instance_ttl" hcl:"instance_ttl,optional"`
	SweepInterval string     `yaml:"sweep_interval" hcl:"sweep_interval,optional"`
	MaxAttempts   int        `yaml:"max_attempts" hcl:"max_attempts,optional"`
	Theme         *ThemeFile `yaml:"theme" hcl:"theme,block"`
}

// ThemeFile selects the theme and variant.
type ThemeFile struct {
	Name    string `yaml:"name" hcl:"name,optional"`
	Variant string `yaml:"variant" hcl:"variant,optional"`
}

// Load reads path, picking the decoder by extension (.yaml, .yml or .hcl).
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data, using filename to pick the format.
func Parse(filename string, data []byte) (File, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return parseYAML(filename, data)
	case ".hcl":
		return parseHCL(filename, data)
	default:
		return File{}, fmt.Errorf("config: unsupported config file %s: want .yaml, .yml or .hcl", filename)
	}
}

func parseYAML(filename string, data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("config: parse %s: %w", filename, err)
	}
	return file, nil
}

func parseHCL(filename string, data []byte) (File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return File{}, fmt.Errorf("config: parse %s: %w", filename, diags)
	}

	var file File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
		return File{}, fmt.Errorf("config: decode %s: %w", filename, diags)
	}
	return file, nil
}

// Config converts the file into an unvalidated Config.
func (f File) Config() (Config, error) {
	cfg := Config{
		Mode:        f.Mode,
		Addr:        f.Addr,
		BasePath:    f.BasePath,
		LogFormat:   f.LogFormat,
		LogLevel:    f.LogLevel,
		Title:       f.Title,
		Notice:      f.Notice,
		MaxAttempts: f.MaxAttempts,
	}
	if f.Theme != nil {
		cfg.Theme = f.Theme.Name
		cfg.ThemeVariant = f.Theme.Variant
	}

	var err error
	if cfg.InstanceTTL, err = parseDuration("instance_ttl", f.InstanceTTL); err != nil {
		return Config{}, err
	}
	if cfg.SweepInterval, err = parseDuration("sweep_interval", f.SweepInterval); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	return d, nil
}
