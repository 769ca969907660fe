package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/foldertree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `tree:
  output: tree.txt
  print: false
  clipboard: false
  ignore:
    defaults:
      - node_modules
      - .vscode
      - out
      - build
      - dist
      - .git
      - .DS_Store
      - Thumbs.db
      - "*.log"
    exclude: []
    use_gitignore: true
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
	HomeDirectory    string
}

// InitializeConfiguration writes the default configuration template to the requested target
// and returns the path it wrote. An existing file is only replaced when Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := resolveInitDestination(options)
	if destinationError != nil {
		return "", destinationError
	}

	_, statError := os.Stat(destinationPath)
	switch {
	case statError == nil && !options.Force:
		return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
	case statError != nil && !os.IsNotExist(statError):
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, statError)
	}

	if writeError := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); writeError != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, writeError)
	}
	return destinationPath, nil
}

func resolveInitDestination(options InitOptions) (string, error) {
	switch options.Target {
	case InitTargetLocal, "":
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		homeDirectory := options.HomeDirectory
		if homeDirectory == "" {
			resolvedHome, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory for configuration: %w", err)
			}
			homeDirectory = resolvedHome
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		return filepath.Join(configurationDirectory, utils.ConfigFileName), nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}
