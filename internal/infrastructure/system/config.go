// Package system provides infrastructure for lintgate configuration.
// This includes loading the project config file (.lintgate.yaml), layering
// LINTGATE_* environment variables over it, and writing a fresh config for
// `lintgate init`.
package system

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/lintgate/internal/domain/entities"
	"github.com/reglet-dev/lintgate/internal/domain/environment"
	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is looked up in the working directory when no
	// --config is given.
	DefaultConfigFile = ".lintgate.yaml"

	// EnvPrefix prefixes every environment override (LINTGATE_TOOL, ...).
	EnvPrefix = "LINTGATE"

	// DefaultEnvRoot is the virtual environment directory.
	DefaultEnvRoot = ".venv"
)

// Config represents the lintgate configuration file.
type Config struct {
	Tool           string            `yaml:"tool" mapstructure:"tool"`
	ConfigPath     string            `yaml:"config_path" mapstructure:"config_path"`
	ConfigFlag     string            `yaml:"config_flag" mapstructure:"config_flag"`
	MinToolVersion string            `yaml:"min_tool_version,omitempty" mapstructure:"min_tool_version"`
	Timeout        string            `yaml:"timeout,omitempty" mapstructure:"timeout"`
	ExtraArgs      []string          `yaml:"extra_args,omitempty" mapstructure:"extra_args"`
	Environment    EnvironmentConfig `yaml:"environment" mapstructure:"environment"`
	SearchPath     SearchPathConfig  `yaml:"search_path" mapstructure:"search_path"`
	Redaction      RedactionConfig   `yaml:"redaction" mapstructure:"redaction"`
	Report         ReportConfig      `yaml:"report,omitempty" mapstructure:"report"`
	MaxOutputBytes int               `yaml:"max_output_bytes" mapstructure:"max_output_bytes"`
}

// EnvironmentConfig locates the isolated environment and says how to activate it.
type EnvironmentConfig struct {
	Root             string `yaml:"root" mapstructure:"root"`
	ActivationScript string `yaml:"activation_script" mapstructure:"activation_script"`
	// Activator is "venv" or "shell"
	Activator string `yaml:"activator" mapstructure:"activator"`
	Shell     string `yaml:"shell,omitempty" mapstructure:"shell"`
}

// SearchPathConfig extends the module search path of the analyzer.
type SearchPathConfig struct {
	Var   string `yaml:"var" mapstructure:"var"`
	Extra string `yaml:"extra,omitempty" mapstructure:"extra"`
}

// RedactionConfig configures how secrets are scrubbed from analyzer output.
type RedactionConfig struct {
	HashMode        HashModeConfig `yaml:"hash_mode" mapstructure:"hash_mode"`
	Patterns        []string       `yaml:"patterns,omitempty" mapstructure:"patterns"`
	Enabled         bool           `yaml:"enabled" mapstructure:"enabled"`
	DisableGitleaks bool           `yaml:"disable_gitleaks,omitempty" mapstructure:"disable_gitleaks"`
}

// HashModeConfig controls hash-based redaction.
type HashModeConfig struct {
	Salt    string `yaml:"salt,omitempty" mapstructure:"salt"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

// ReportConfig selects the machine-readable report.
type ReportConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"`
	// File is the report destination; "-" means stdout.
	File string `yaml:"file,omitempty" mapstructure:"file"`
}

// DefaultConfig returns a Config with the default pylint-in-venv setup.
// This is used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Tool:       entities.DefaultTool,
		ConfigPath: entities.DefaultConfigPath,
		ConfigFlag: entities.DefaultConfigFlag,
		ExtraArgs:  []string{},
		Environment: EnvironmentConfig{
			Root:             DefaultEnvRoot,
			ActivationScript: environment.DefaultActivationScript,
			Activator:        "venv",
		},
		SearchPath: SearchPathConfig{
			Var: entities.DefaultSearchPathVar,
		},
		Redaction: RedactionConfig{
			Patterns: []string{},
		},
		MaxOutputBytes: entities.DefaultMaxOutput,
	}
}

// ConfigLoader loads the effective configuration.
// Precedence: bound flags > LINTGATE_* environment > config file > defaults.
type ConfigLoader struct {
	v *viper.Viper
}

// NewConfigLoader creates a loader on top of v. Flags bound to v before
// Load take precedence over everything else. A nil v uses a fresh instance.
func NewConfigLoader(v *viper.Viper) *ConfigLoader {
	if v == nil {
		v = viper.New()
	}
	return &ConfigLoader{v: v}
}

// Viper returns the underlying viper instance, for flag binding.
func (l *ConfigLoader) Viper() *viper.Viper {
	return l.v
}

// Load reads the config file at path and layers the environment over it.
// An empty path looks for DefaultConfigFile in the working directory and
// falls back to defaults when it does not exist. An explicit path must exist.
func (l *ConfigLoader) Load(path string) (*Config, error) {
	setDefaults(l.v, DefaultConfig())

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	//nolint:gosec // G304: path is the user-provided config file
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := ValidateDocument(data); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		l.v.SetConfigType("yaml")
		if err := l.v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("tool", d.Tool)
	v.SetDefault("config_path", d.ConfigPath)
	v.SetDefault("config_flag", d.ConfigFlag)
	v.SetDefault("min_tool_version", d.MinToolVersion)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("extra_args", d.ExtraArgs)
	v.SetDefault("max_output_bytes", d.MaxOutputBytes)
	v.SetDefault("environment.root", d.Environment.Root)
	v.SetDefault("environment.activation_script", d.Environment.ActivationScript)
	v.SetDefault("environment.activator", d.Environment.Activator)
	v.SetDefault("environment.shell", d.Environment.Shell)
	v.SetDefault("search_path.var", d.SearchPath.Var)
	v.SetDefault("search_path.extra", d.SearchPath.Extra)
	v.SetDefault("redaction.enabled", d.Redaction.Enabled)
	v.SetDefault("redaction.patterns", d.Redaction.Patterns)
	v.SetDefault("redaction.disable_gitleaks", d.Redaction.DisableGitleaks)
	v.SetDefault("redaction.hash_mode.enabled", d.Redaction.HashMode.Enabled)
	v.SetDefault("redaction.hash_mode.salt", d.Redaction.HashMode.Salt)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.file", d.Report.File)
}

// GateConfig converts the file format to the domain configuration.
func (c *Config) GateConfig() entities.GateConfig {
	return entities.GateConfig{
		Tool:            c.Tool,
		ConfigPath:      c.ConfigPath,
		ConfigFlag:      c.ConfigFlag,
		SearchPathVar:   c.SearchPath.Var,
		SearchPathExtra: c.SearchPath.Extra,
		MinToolVersion:  c.MinToolVersion,
		ExtraArgs:       append([]string(nil), c.ExtraArgs...),
		MaxOutputBytes:  c.MaxOutputBytes,
		RedactOutput:    c.Redaction.Enabled,
	}
}

// GateTimeout parses Timeout. Empty means no timeout.
func (c *Config) GateTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// Write saves cfg as YAML at path. An existing file is only replaced when
// overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	data, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	//nolint:gosec // G304: path is the user-chosen config destination
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}
