package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFilename is the name of the config file
const ConfigFilename = "config"

// ConfigType is the type of config file (yaml, json, toml)
const ConfigType = "yaml"

// InitViper initializes Viper with proper search paths and defaults
// Priority (highest to lowest):
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (QREPORT_*)
// 3. User config file (~/.config/qreport/config.yaml)
// 4. System config file (/etc/qreport/config.yaml)
// 5. Defaults
func InitViper() error {
	viper.SetConfigName(ConfigFilename)
	viper.SetConfigType(ConfigType)

	// User config (highest priority)
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(userConfigDir, "qreport"))
	}

	// Home directory fallback
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".qreport"))
	}

	// System-wide config (lower priority)
	viper.AddConfigPath("/etc/qreport")

	// Current directory (for development)
	viper.AddConfigPath(".")

	// Environment variables
	viper.SetEnvPrefix("QREPORT")
	viper.AutomaticEnv()

	setDefaults()

	// Read config file (non-fatal if not found)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults and auto-detection apply
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setDefaults sets default values for all config keys
func setDefaults() {
	viper.SetDefault("qstat_bin", "")
	viper.SetDefault("pbsnodes_bin", "")
	viper.SetDefault("staff_users", []string{"husby", "cporter"})
	viper.SetDefault("highmem_property", "himem")
	viper.SetDefault("log_dir", "")
}

// LoadFromViper copies resolved viper values into the Global config.
func LoadFromViper() {
	if bin := viper.GetString("qstat_bin"); bin != "" {
		Global.QstatBin = bin
	}
	if bin := viper.GetString("pbsnodes_bin"); bin != "" {
		Global.PbsnodesBin = bin
	}
	if users := viper.GetStringSlice("staff_users"); len(users) > 0 {
		Global.StaffUsers = users
	}
	if prop := viper.GetString("highmem_property"); prop != "" {
		Global.HighMemProperty = prop
	}
	Global.LogDir = viper.GetString("log_dir")
}

// AutoDetectBinaries resolves the scheduler binaries through PATH when the
// config has not pinned them. Missing binaries are left as bare names so the
// eventual exec failure carries the command name.
func AutoDetectBinaries() {
	if viper.GetString("qstat_bin") == "" {
		if path, err := exec.LookPath("qstat"); err == nil {
			Global.QstatBin = path
		}
	}
	if viper.GetString("pbsnodes_bin") == "" {
		if path, err := exec.LookPath("pbsnodes"); err == nil {
			Global.PbsnodesBin = path
		}
	}
}

// GetUserConfigPath returns the path to the user config file
func GetUserConfigPath() (string, error) {
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".qreport", ConfigFilename+"."+ConfigType), nil
	}

	return filepath.Join(userConfigDir, "qreport", ConfigFilename+"."+ConfigType), nil
}
