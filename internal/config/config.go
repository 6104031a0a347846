package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. These are CLI-level defaults only; the
// analysis thresholds themselves are fixed constants and deliberately not
// configurable, since changing them changes report contents.
type Global struct {
	// MaxRows limits how many data rows are loaded; 0 means unlimited.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`
	// SheetIndex is the default 1-based XLSX sheet when none is named.
	SheetIndex int `mapstructure:"sheet_index" yaml:"sheet_index"`
	// OutputDir is where reports land when --output gives a bare file name.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// Delimiter overrides CSV delimiter detection: "," ";" or "tab".
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.poslens/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".poslens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("POSLENS")
	v.AutomaticEnv()

	v.SetDefault("max_rows", 100000)
	v.SetDefault("sheet_index", 1)
	v.SetDefault("output_dir", "")
	v.SetDefault("delimiter", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".poslens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
