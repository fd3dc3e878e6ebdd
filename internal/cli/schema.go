package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/inlinecomplete/internal/config"
)

// Schema displays or exports the JSON Schema for inlinecomplete configuration files
func Schema(w io.Writer, outputPath string) error {
	schemaJSON := config.GetSchemaJSON()
	out := output(w)

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, err := fmt.Fprintf(out, "JSON Schema written to: %s\n", outputPath)
		return err
	}

	_, err := fmt.Fprintln(out, schemaJSON)
	return err
}
