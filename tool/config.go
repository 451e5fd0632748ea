package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ellied/framecast/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		WebPort:          8080,
		DeviceHost:       "", // unknown until the user scans or sets it.
		DevicePort:       12345,
		CommandTimeoutMs: 5000,
		GraceDelayMs:     100, // empirically chosen, the frame needs time to drain the buffer.
		ScanTimeoutMs:    500,
		FlickrAPIKey:     "",
		FlickrUserID:     "",
		DefaultTag:       "",
		PresetsPath:      "presets.yaml",
	}
}

func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	// Update ConfigPath so it can be used for saving settings later
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, create with default values
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

// PersistAppConfig updates the in-memory AppConfig and writes it back to the config file.
func PersistAppConfig(cfg *types.AppConfig) {
	if cfg == nil {
		return
	}
	CurrentConfig = *cfg
	if err := writeConfig(ConfigPath, CurrentConfig); err != nil {
		DefaultLogger.Warnf("Failed to persist config: %v", err)
	}
}
