package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/foldertree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	HomeDirectory    string
}

// ApplicationConfiguration holds command defaults read from configuration files.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration defines defaults for tree generation.
type TreeConfiguration struct {
	Output    string              `mapstructure:"output"`
	Print     *bool               `mapstructure:"print"`
	Clipboard *bool               `mapstructure:"clipboard"`
	Ignore    IgnoreConfiguration `mapstructure:"ignore"`
}

// IgnoreConfiguration configures the patterns handed to the pattern compiler.
type IgnoreConfiguration struct {
	Defaults     []string `mapstructure:"defaults"`
	Exclude      []string `mapstructure:"exclude"`
	UseGitignore *bool    `mapstructure:"use_gitignore"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local one.
// Values from the local file override global values.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Tree.Ignore.Defaults = utils.DeduplicatePatterns(merged.Tree.Ignore.Defaults)
	merged.Tree.Ignore.Exclude = utils.DeduplicatePatterns(merged.Tree.Ignore.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// loadConfigurationFromPath reads a configuration file. A missing file yields an empty
// configuration unless required is set.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

// OutputFileName returns the configured output file name or the default tree.txt.
func (config TreeConfiguration) OutputFileName() string {
	if config.Output == "" {
		return utils.DefaultOutputFileName
	}
	return config.Output
}

// DefaultPatterns returns the configured default patterns, or the built-in list when none are set.
func (config IgnoreConfiguration) DefaultPatterns() []string {
	if len(config.Defaults) == 0 {
		return DefaultIgnorePatterns()
	}
	return append([]string{}, config.Defaults...)
}

// GitignoreEnabled reports whether the root ignore file should be consulted.
func (config IgnoreConfiguration) GitignoreEnabled() bool {
	return config.UseGitignore == nil || *config.UseGitignore
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Print != nil {
		result.Print = cloneBool(override.Print)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Ignore = result.Ignore.merge(override.Ignore)
	return result
}

func (config IgnoreConfiguration) merge(override IgnoreConfiguration) IgnoreConfiguration {
	result := config
	if len(override.Defaults) > 0 {
		result.Defaults = append([]string{}, override.Defaults...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, override.Exclude...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
