package status

import (
	"time"

	"github.com/NikitaCOEUR/promptline/internal/commands"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Configuration
	GlobalConfigDir string
	ConfigFiles     []string
	LogLevel        string

	// Classifier
	Rules      []RuleInfo
	ExtraWords []string

	// Completion
	Completers        []string
	MaxResults        int
	CompletionTimeout time.Duration

	// Oracle
	LookupTimeout time.Duration
	CachedWords   int

	// Menu
	MaxVisible int
	MenuWidth  int
	HideCursor bool

	// Slash commands
	Commands []commands.Command
}

// RuleInfo describes one classification rule
type RuleInfo struct {
	Name       string
	Definitive bool
}
