package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Default input/output workbook names, resolved against the working
// directory.
const (
	DefaultInput  = "customers_database.xlsx"
	DefaultOutput = "SalesAnalysis_Report.xlsx"
)

// Config represents the complete application configuration
type Config struct {
	Input  string `mapstructure:"input" yaml:"input"`
	Output string `mapstructure:"output" yaml:"output"`
	CSVDir string `mapstructure:"csv_dir" yaml:"csv_dir"`

	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	// ColumnMapFile points at an optional YAML document renaming workbook
	// columns to the canonical headers at the load boundary.
	ColumnMapFile string `mapstructure:"column_map" yaml:"column_map"`
}

// InitializeConfig loads configuration in priority order: defaults, an
// optional config file, then SALESKPI_-prefixed environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("input", DefaultInput)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("csv_dir", "")
	v.SetDefault("column_map", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sales-kpi")
	v.AddConfigPath(".sales-kpi")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SALESKPI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// LoadColumnMap reads the column rename map from a YAML file. An empty
// path yields an empty map.
func LoadColumnMap(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading column map %s: %w", path, err)
	}
	var doc struct {
		Columns map[string]string `yaml:"columns"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing column map %s: %w", path, err)
	}
	return doc.Columns, nil
}
