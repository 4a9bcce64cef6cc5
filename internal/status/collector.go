package status

import (
	"github.com/NikitaCOEUR/promptline/internal/config"
	"github.com/NikitaCOEUR/promptline/internal/session"
	"github.com/NikitaCOEUR/promptline/pkg/version"
)

// Collect gathers status data from the loaded configuration and the
// components built from it
func Collect(cwd string, cfg *config.Config, files []string, comps *session.Components) *Data {
	data := &Data{
		CurrentDir:        cwd,
		Version:           version.Version,
		ConfigFiles:       append([]string(nil), files...),
		LogLevel:          cfg.LogLevel,
		ExtraWords:        append([]string(nil), cfg.Classifier.LocalOnlyWords...),
		MaxResults:        cfg.Completion.MaxResults,
		CompletionTimeout: cfg.Completion.Timeout,
		LookupTimeout:     cfg.Oracle.LookupTimeout,
		MaxVisible:        cfg.Menu.MaxVisible,
		MenuWidth:         cfg.Menu.Width,
		HideCursor:        cfg.Menu.HideCursor,
	}

	if dir, err := config.GetGlobalConfigDir(); err == nil {
		data.GlobalConfigDir = dir
	}

	if comps != nil {
		for _, r := range comps.Classifier.Rules() {
			data.Rules = append(data.Rules, RuleInfo{Name: r.Name, Definitive: r.Definitive})
		}
		data.Completers = comps.Manager.Names()
		data.CachedWords = comps.Oracle.Len()
		data.Commands = comps.Registry.List()
	}

	return data
}
