package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
)

// Validate validates an inlinecomplete configuration file
func Validate(w io.Writer, configPath string) error {
	// If no path provided, look for the nearest config
	if configPath == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		configPath = config.FindConfigFile(currentDir)
		if configPath == "" {
			return fmt.Errorf("no config file found in current directory or its parents")
		}
	}

	out := output(w)
	_, _ = fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintln(out, "⚠️  Warnings:")
		for i, warning := range result.Warnings {
			_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, warning.Field, warning.Message)
		}
		_, _ = fmt.Fprintln(out)
	}

	if result.Valid {
		_, _ = fmt.Fprintln(out, "✅ Configuration is valid!")
		return nil
	}

	// Display errors
	_, _ = fmt.Fprintln(out, "❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	_, _ = fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	// Return non-zero exit code
	return fmt.Errorf("validation failed")
}
