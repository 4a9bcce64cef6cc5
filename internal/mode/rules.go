package mode

import (
	"regexp"
	"strings"

	"github.com/NikitaCOEUR/promptline/internal/oracle"
)

// Existence is the oracle's answer for a command name
type Existence int

const (
	// Unknown means the answer is not available without a lookup
	Unknown Existence = iota
	// Found means the command exists
	Found
	// NotFound means the command does not exist or the lookup failed
	NotFound
)

// Input is what a DetectionRule sees of one line
type Input struct {
	Raw       string
	Trimmed   string
	FirstWord string
	Words     []string

	exists     func(word string) Existence
	isLocal    func(name string) bool
	natural    map[string]bool
	unresolved bool
}

// Exists asks the oracle about word. An Unknown answer is treated as NotFound
// and marks the classification as tentative.
func (in *Input) Exists(word string) bool {
	if in.exists == nil {
		return false
	}
	switch in.exists(word) {
	case Found:
		return true
	case Unknown:
		in.unresolved = true
	}
	return false
}

// IsLocalCommand reports whether name is a registered slash command
func (in *Input) IsLocalCommand(name string) bool {
	return in.isLocal != nil && in.isLocal(name)
}

// IsNatural reports whether word belongs to the natural-language vocabulary
func (in *Input) IsNatural(word string) bool {
	w := normalizeWord(word)
	return naturalWords[w] || in.natural[w]
}

// DetectionRule is one step of the classification cascade. Test returns
// false when the rule does not apply.
type DetectionRule struct {
	Name       string
	Definitive bool
	Test       func(in *Input) (Mode, bool)
}

var (
	absolutePathPattern  = regexp.MustCompile(`^/[^/\s]+(/[^/\s]*)+$`)
	requestPattern       = regexp.MustCompile(`(?i)^(?:(?:can|could|would|will|should)\s+(?:you|we|i)\b|please\b)`)
	commandShapePattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	naturalWordPattern   = regexp.MustCompile(`^[\p{L}\p{N}]+(?:['’-][\p{L}\p{N}]+)*[.,!?:;]?$`)
	shellMetacharacters  = []string{"|", ">", "<", ";", "&&", "||", "$(", "`"}
	wordPunctuationTrail = ".,!?:;"
)

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimRight(w, wordPunctuationTrail))
}

func hasMetacharacter(s string) bool {
	for _, m := range shellMetacharacters {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func hasOption(words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(w, "-") {
			return true
		}
	}
	return false
}

// DefaultRules is the classification cascade in priority order. The last
// rule always matches.
var DefaultRules = []DetectionRule{
	{
		Name:       "empty",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			return NaturalLanguage, in.Trimmed == ""
		},
	},
	{
		Name:       "explicit-override",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			switch {
			case strings.HasPrefix(in.Raw, "?"):
				return NaturalLanguage, true
			case strings.HasPrefix(in.Raw, "!"):
				return Shell, true
			}
			return NaturalLanguage, false
		},
	},
	{
		Name:       "leading-space",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			return NaturalLanguage, strings.HasPrefix(in.Raw, " ")
		},
	},
	{
		Name:       "slash",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			if !strings.HasPrefix(in.Trimmed, "/") {
				return NaturalLanguage, false
			}
			name := strings.TrimPrefix(in.FirstWord, "/")
			switch {
			case in.IsLocalCommand(name):
				return Slash, true
			case absolutePathPattern.MatchString(in.FirstWord):
				return Shell, true
			default:
				return Slash, true
			}
		},
	},
	{
		Name: "metacharacters",
		Test: func(in *Input) (Mode, bool) {
			if !hasMetacharacter(in.Trimmed) {
				return NaturalLanguage, false
			}
			if in.Exists(in.FirstWord) {
				return Shell, true
			}
			return Invalid, true
		},
	},
	{
		Name:       "variable",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			return Shell, strings.Contains(in.Trimmed, "$")
		},
	},
	{
		Name:       "builtin",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			return Shell, oracle.IsBuiltin(in.FirstWord)
		},
	},
	{
		Name:       "prompt-worthy",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			return Ambiguous, len(in.Words) == 1 && promptWorthy[strings.ToLower(in.FirstWord)]
		},
	},
	{
		Name:       "natural-vocabulary",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			for _, w := range in.Words {
				if !in.IsNatural(w) {
					return NaturalLanguage, false
				}
			}
			return NaturalLanguage, true
		},
	},
	{
		Name:       "question",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			first := normalizeWord(in.FirstWord)
			if len(in.Words) == 1 {
				return NaturalLanguage, questionOnly[first]
			}
			if hasOption(in.Words) {
				return NaturalLanguage, false
			}
			return NaturalLanguage, questionWords[first]
		},
	},
	{
		Name:       "request",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			return NaturalLanguage, requestPattern.MatchString(in.Trimmed)
		},
	},
	{
		Name:       "conflict",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			alone, ok := conflictAlone[strings.ToLower(in.FirstWord)]
			if !ok {
				return NaturalLanguage, false
			}
			if len(in.Words) == 1 {
				return alone, true
			}
			for _, w := range in.Words[1:] {
				if in.IsNatural(w) {
					return NaturalLanguage, true
				}
			}
			return NaturalLanguage, false
		},
	},
	{
		Name: "known-command",
		Test: func(in *Input) (Mode, bool) {
			return Shell, in.Exists(in.FirstWord)
		},
	},
	{
		Name:       "sentence",
		Definitive: true,
		Test: func(in *Input) (Mode, bool) {
			if len(in.Words) < 3 || hasOption(in.Words) {
				return NaturalLanguage, false
			}
			long := false
			for _, w := range in.Words {
				if !naturalWordPattern.MatchString(w) {
					return NaturalLanguage, false
				}
				if len(w) > 3 {
					long = true
				}
			}
			return NaturalLanguage, long
		},
	},
	{
		Name: "unknown-command",
		Test: func(in *Input) (Mode, bool) {
			return Invalid, commandShapePattern.MatchString(in.FirstWord)
		},
	},
	{
		Name:       "fallback",
		Definitive: true,
		Test: func(_ *Input) (Mode, bool) {
			return NaturalLanguage, true
		},
	},
}

// InsertBefore returns a copy of rules with rule placed before the rule named
// name, or appended before the last rule when name is not found
func InsertBefore(rules []DetectionRule, name string, rule DetectionRule) []DetectionRule {
	idx := len(rules) - 1
	if idx < 0 {
		idx = 0
	}
	for i, r := range rules {
		if r.Name == name {
			idx = i
			break
		}
	}

	out := make([]DetectionRule, 0, len(rules)+1)
	out = append(out, rules[:idx]...)
	out = append(out, rule)
	out = append(out, rules[idx:]...)
	return out
}
