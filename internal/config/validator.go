package config

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate validates a config file: its syntax and shape against the schema,
// then the values the schema cannot express.
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := NewLoader().LoadFile(path)
	if err != nil {
		result.addError("syntax", fmt.Sprintf("Failed to parse config: %v", err))
		return result, nil
	}

	for _, e := range Check(cfg) {
		result.addError(e.Field, e.Message)
	}
	return result, nil
}

// Check reports semantic errors in a loaded config
func Check(cfg *Config) []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if cfg.Completion.MaxResults <= 0 {
		add("completion/max_results", "Must be positive, got %d", cfg.Completion.MaxResults)
	}
	if cfg.Completion.Timeout <= 0 {
		add("completion/timeout", "Must be positive, got %s", cfg.Completion.Timeout)
	}
	if cfg.Oracle.LookupTimeout <= 0 {
		add("oracle/lookup_timeout", "Must be positive, got %s", cfg.Oracle.LookupTimeout)
	}
	if cfg.Menu.MaxVisible <= 0 {
		add("menu/max_visible", "Must be positive, got %d", cfg.Menu.MaxVisible)
	}
	if cfg.Menu.Width < 0 {
		add("menu/width", "Must not be negative, got %d", cfg.Menu.Width)
	}
	if cfg.Menu.ItemTemplate != "" {
		if _, err := template.New("item").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{"subtle": fmt.Sprint}).Parse(cfg.Menu.ItemTemplate); err != nil {
			add("menu/item_template", "Invalid template: %v", err)
		}
	}

	// Names and aliases share one namespace
	seen := make(map[string]string)
	for i, cmd := range cfg.Commands {
		field := fmt.Sprintf("commands/%d", i)
		name := normalizeCommand(cmd.Name)
		if name == "" {
			add(field+"/name", "Command name is empty")
			continue
		}
		if owner, ok := seen[name]; ok {
			add(field+"/name", "Name conflict: '%s' is already used by '%s'", name, owner)
		} else {
			seen[name] = name
		}
		for _, alias := range cmd.Aliases {
			a := normalizeCommand(alias)
			if a == "" {
				add(field+"/aliases", "Alias is empty")
				continue
			}
			if owner, ok := seen[a]; ok {
				add(field+"/aliases", "Name conflict: '%s' is already used by '%s'", a, owner)
				continue
			}
			seen[a] = name
		}
	}
	return errs
}

func normalizeCommand(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}
