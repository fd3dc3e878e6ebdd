package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
	"github.com/NikitaCOEUR/inlinecomplete/internal/derrors"
)

const sampleHeader = `# inlinecomplete configuration file
# Validate it with: inlinecomplete validate
# Export the JSON Schema with: inlinecomplete schema -o inlinecomplete.schema.json

`

// Init writes the built-in configuration as a starting point, either to
// .inlinecomplete.yml in the current directory or to the global config
func Init(w io.Writer, global bool) error {
	var configPath string

	if global {
		globalPath, err := config.GetGlobalConfigPath()
		if err != nil {
			return derrors.NewConfigurationError("", "failed to get global config path", err)
		}
		configPath = globalPath

		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return derrors.NewConfigurationError(configPath, "failed to create config directory", err)
		}
	} else {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		configPath = filepath.Join(currentDir, config.SupportedConfigNames[0])
	}

	if _, err := os.Stat(configPath); err == nil {
		return derrors.NewAlreadyExistsError(configPath, fmt.Sprintf("config file already exists: %s", configPath))
	}

	content := append([]byte(sampleHeader), config.DefaultYAML()...)
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to write config file", err)
	}

	_, err := fmt.Fprintf(output(w), "Created %s\n", configPath)
	return err
}
