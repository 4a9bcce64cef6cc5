package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/promptline/internal/config"
)

// Validate validates a promptline configuration file. With no path, the
// project config in Dir is used.
func Validate(params Params, configPath string) error {
	out := params.out()

	// If no path provided, look for config in the working directory
	if configPath == "" {
		dir := params.Dir
		if dir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			dir = wd
		}

		for _, name := range config.SupportedConfigNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			return fmt.Errorf("no config file found in %s", dir)
		}
	}

	fmt.Fprintf(out, "Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		fmt.Fprintln(out, successStyle.Render("✅ Configuration is valid!"))
		return nil
	}

	// Display errors
	fmt.Fprintln(out, errorStyle.Render("❌ Configuration has errors:"))
	for i, validationErr := range result.Errors {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Fprintf(out, "\nFound %d error(s)\n", len(result.Errors))

	// Return non-zero exit code
	return fmt.Errorf("validation failed")
}
