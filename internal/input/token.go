// Package input tokenizes the prompt line and builds the per-keystroke input state.
package input

import "strings"

// TokenType classifies a token of the prompt line
type TokenType int

const (
	// TokenCommand is the first word of a command segment
	TokenCommand TokenType = iota
	// TokenArgument is a plain word after the command
	TokenArgument
	// TokenOption is a word starting with '-'
	TokenOption
	// TokenEntity is a word starting with '@' (file or entity reference)
	TokenEntity
	// TokenPath is a word that looks like a filesystem path
	TokenPath
	// TokenString is a quoted string, quotes included
	TokenString
	// TokenOperator is a shell operator such as '|' or '&&'
	TokenOperator
	// TokenWhitespace is a run of whitespace
	TokenWhitespace
)

// String returns the token type name
func (t TokenType) String() string {
	switch t {
	case TokenCommand:
		return "command"
	case TokenArgument:
		return "argument"
	case TokenOption:
		return "option"
	case TokenEntity:
		return "entity"
	case TokenPath:
		return "path"
	case TokenString:
		return "string"
	case TokenOperator:
		return "operator"
	case TokenWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Token is a typed slice of the raw text. Start and End are byte offsets, End exclusive.
type Token struct {
	Type  TokenType
	Value string
	Start int
	End   int
}

// Contains reports whether pos falls inside the token or right at its end
func (t Token) Contains(pos int) bool {
	return pos >= t.Start && pos <= t.End
}

// operators is ordered so that longer operators are tried first
var operators = []string{">>", "<<", "&&", "||", "|", ">", "<", ";", "&"}

func isOperator(s string) bool {
	for _, op := range operators {
		if s == op {
			return true
		}
	}
	return false
}

func matchOperator(text string, pos int) string {
	for _, op := range operators {
		if strings.HasPrefix(text[pos:], op) {
			return op
		}
	}
	return ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isQuote(b byte) bool {
	return b == '"' || b == '\''
}

// Tokenize splits text into tokens. It never fails and the concatenation of
// all token values is always the original text.
func Tokenize(text string) []Token {
	tokens := []Token{}
	commandPosition := true
	pos := 0

	for pos < len(text) {
		start := pos

		switch {
		case isSpace(text[pos]):
			for pos < len(text) && isSpace(text[pos]) {
				pos++
			}
			tokens = append(tokens, Token{Type: TokenWhitespace, Value: text[start:pos], Start: start, End: pos})
			continue

		case isQuote(text[pos]):
			pos = scanQuoted(text, pos)
			tokens = append(tokens, Token{Type: TokenString, Value: text[start:pos], Start: start, End: pos})
			commandPosition = false
			continue
		}

		if op := matchOperator(text, pos); op != "" {
			pos += len(op)
			tokens = append(tokens, Token{Type: TokenOperator, Value: op, Start: start, End: pos})
			commandPosition = true
			continue
		}

		for pos < len(text) && !isSpace(text[pos]) && !isQuote(text[pos]) && matchOperator(text, pos) == "" {
			pos++
		}
		word := text[start:pos]
		tokens = append(tokens, Token{Type: tokenType(word, commandPosition), Value: word, Start: start, End: pos})
		commandPosition = false
	}

	return tokens
}

// scanQuoted returns the position right after the closing quote, or len(text)
// when the string is unterminated
func scanQuoted(text string, pos int) int {
	quote := text[pos]
	pos++
	for pos < len(text) {
		switch text[pos] {
		case '\\':
			pos += 2
			if pos > len(text) {
				return len(text)
			}
			continue
		case quote:
			return pos + 1
		}
		pos++
	}
	return len(text)
}

func tokenType(word string, commandPosition bool) TokenType {
	switch {
	case isOperator(word):
		return TokenOperator
	case strings.HasPrefix(word, "-"):
		return TokenOption
	case strings.HasPrefix(word, "@"):
		return TokenEntity
	case !commandPosition && (strings.Contains(word, "/") || strings.HasPrefix(word, ".")):
		return TokenPath
	case commandPosition:
		return TokenCommand
	default:
		return TokenArgument
	}
}
