// Config loading for the storefront CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/dukaforge/storefront/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir        = "data_dir"
	cfgKeyMirrorEndpoint = "mirror_endpoint"
	cfgKeyMirrorTimeout  = "mirror_timeout_seconds"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# Storefront CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Remote mirror endpoint; leave empty to run purely local
# mirror_endpoint:

# HTTP client timeout in seconds; 0 uses the client defaults
mirror_timeout_seconds: 0
`

// loadConfig reads config.yaml from the config directory using Viper and
// folds in the flag overrides. A missing config.yaml is not an error.
func loadConfig() (types.Config, error) {
	configDir := flagConfigDir
	if configDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return types.Config{}, err
		}
		configDir = filepath.Join(cwd, ".storefront")
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDataDir, filepath.Join(configDir, "data"))
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		DataDir:        v.GetString(cfgKeyDataDir),
		MirrorEndpoint: v.GetString(cfgKeyMirrorEndpoint),
		MirrorTimeout:  time.Duration(v.GetInt(cfgKeyMirrorTimeout)) * time.Second,
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagEndpoint != "" {
		cfg.MirrorEndpoint = flagEndpoint
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
