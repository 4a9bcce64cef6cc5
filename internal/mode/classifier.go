package mode

import (
	"context"
	"strings"

	"github.com/NikitaCOEUR/promptline/internal/logger"
	"github.com/NikitaCOEUR/promptline/internal/suggest"
	"github.com/NikitaCOEUR/promptline/internal/trace"
)

// Oracle answers whether a command exists
type Oracle interface {
	// IsCommand may block on a lookup. Failures must resolve to false.
	IsCommand(ctx context.Context, word string) bool
	// Cached returns a previously resolved answer without doing any I/O
	Cached(word string) (exists bool, ok bool)
}

// LocalCommands reports which slash command names are registered
type LocalCommands interface {
	Has(name string) bool
}

// Result is the outcome of one classification
type Result struct {
	Mode Mode
	// Rule is the name of the rule that fired
	Rule string
	// Definitive is false when a sync answer still needs the oracle
	Definitive bool
	// Suggestion is a correction for the first word of an Invalid line
	Suggestion string
}

// Classifier runs the rule cascade. It is safe for concurrent use.
type Classifier struct {
	rules   []DetectionRule
	oracle  Oracle
	local   LocalCommands
	natural map[string]bool
	log     *logger.Logger
}

// Option configures a Classifier
type Option func(*Classifier)

// WithRules replaces the rule table. The last rule must always match.
func WithRules(rules []DetectionRule) Option {
	return func(c *Classifier) {
		c.rules = append([]DetectionRule(nil), rules...)
	}
}

// WithNaturalWords extends the natural-language vocabulary
func WithNaturalWords(words ...string) Option {
	return func(c *Classifier) {
		for _, w := range words {
			c.natural[strings.ToLower(w)] = true
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Classifier) {
		c.log = log
	}
}

// NewClassifier creates a classifier backed by oracle and local. Both may be nil.
func NewClassifier(oracle Oracle, local LocalCommands, opts ...Option) *Classifier {
	c := &Classifier{
		rules:   DefaultRules,
		oracle:  oracle,
		local:   local,
		natural: make(map[string]bool),
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rules returns a copy of the rule table
func (c *Classifier) Rules() []DetectionRule {
	return append([]DetectionRule(nil), c.rules...)
}

// ClassifySync classifies text without I/O. Oracle answers come from the cache
// only; a miss counts as "not found" and makes the result tentative.
// Ambiguous and Invalid collapse to NaturalLanguage and are never definitive.
func (c *Classifier) ClassifySync(text string) Result {
	in := c.newInput(text, func(word string) Existence {
		if c.oracle == nil {
			return NotFound
		}
		exists, ok := c.oracle.Cached(word)
		switch {
		case !ok:
			return Unknown
		case exists:
			return Found
		default:
			return NotFound
		}
	})

	res := c.run(in)
	if live := res.Mode.Live(); live != res.Mode {
		// The authoritative pass will report the uncollapsed mode
		res.Mode = live
		res.Definitive = false
	}
	return res
}

// Classify is the authoritative classification. It may wait on the oracle.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	defer trace.Region(ctx, "mode.Classify")()

	in := c.newInput(text, func(word string) Existence {
		if c.oracle != nil && c.oracle.IsCommand(ctx, word) {
			return Found
		}
		return NotFound
	})

	res := c.run(in)
	res.Definitive = true
	if res.Mode == Invalid {
		res.Suggestion = suggest.Suggest(in.FirstWord)
	}

	c.log.Debug().
		Str("mode", res.Mode.String()).
		Str("rule", res.Rule).
		Str("suggestion", res.Suggestion).
		Msg("Classified input")

	return res
}

func (c *Classifier) newInput(text string, exists func(string) Existence) *Input {
	trimmed := strings.TrimSpace(text)
	words := strings.Fields(trimmed)
	first := ""
	if len(words) > 0 {
		first = words[0]
	}

	in := &Input{
		Raw:       text,
		Trimmed:   trimmed,
		FirstWord: first,
		Words:     words,
		exists:    exists,
		natural:   c.natural,
	}
	if c.local != nil {
		in.isLocal = c.local.Has
	}
	return in
}

func (c *Classifier) run(in *Input) Result {
	for _, rule := range c.rules {
		if m, ok := rule.Test(in); ok {
			return Result{
				Mode:       m,
				Rule:       rule.Name,
				Definitive: rule.Definitive && !in.unresolved,
			}
		}
	}
	// Only reachable with a custom table lacking a catch-all
	return Result{Mode: NaturalLanguage, Rule: "none"}
}
