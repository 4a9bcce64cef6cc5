package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/promptline/internal/config"
)

// Schema displays or exports the JSON Schema for promptline configuration files
func Schema(params Params, outputPath string) error {
	schemaJSON := config.GetSchemaJSON()
	out := params.out()

	// If output path is provided, write to file
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0644); err != nil {
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		fmt.Fprintf(out, "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	// Otherwise, print to stdout
	fmt.Fprintln(out, schemaJSON)
	return nil
}
