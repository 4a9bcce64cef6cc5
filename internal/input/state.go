package input

import (
	"strings"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/mode"
)

// HistoryEntry is one previously submitted line
type HistoryEntry struct {
	Command   string
	Timestamp time.Time
}

// State is an immutable snapshot of the prompt line for one keystroke.
// Build a new one with NewState for every edit.
type State struct {
	RawText         string
	CursorPos       int
	Tokens          []Token
	TokenIndex      int
	CurrentToken    *Token
	Prefix          string
	Mode            mode.Mode
	IsEntityTrigger bool
	IsSlashCommand  bool
	Cwd             string
	History         []HistoryEntry
}

// NewState tokenizes text and derives the cursor-relative fields.
// The cursor is clamped to the text bounds. History is copied so that
// snapshots never share backing arrays.
func NewState(text string, cursor int, m mode.Mode, cwd string, history []HistoryEntry) State {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	s := State{
		RawText:   text,
		CursorPos: cursor,
		Mode:      m,
		Cwd:       cwd,
		History:   append([]HistoryEntry(nil), history...),
	}
	return UpdateWithTokens(s)
}

// UpdateWithTokens returns a copy of s with tokens, current token, prefix and
// trigger flags recomputed from RawText and CursorPos
func UpdateWithTokens(s State) State {
	s.Tokens = Tokenize(s.RawText)
	s.TokenIndex = 0
	s.CurrentToken = nil
	s.Prefix = ""
	s.IsEntityTrigger = false
	s.IsSlashCommand = strings.HasPrefix(s.RawText, "/")

	if len(s.Tokens) == 0 {
		return s
	}

	// The first token containing the cursor wins, so a cursor right after a
	// word stays on that word
	s.TokenIndex = len(s.Tokens) - 1
	for i, tok := range s.Tokens {
		if tok.Contains(s.CursorPos) {
			s.TokenIndex = i
			break
		}
	}

	tok := s.Tokens[s.TokenIndex]
	s.CurrentToken = &tok

	if tok.Type != TokenWhitespace {
		offset := s.CursorPos - tok.Start
		if offset > len(tok.Value) {
			offset = len(tok.Value)
		}
		if offset > 0 {
			s.Prefix = tok.Value[:offset]
		}
	}

	s.IsEntityTrigger = tok.Type == TokenEntity || strings.HasPrefix(s.Prefix, "@")
	return s
}

// InCommandPosition reports whether the cursor is completing a command name:
// either on a command token or on whitespace that starts a new segment
func (s State) InCommandPosition() bool {
	if s.CurrentToken == nil {
		return true
	}
	switch s.CurrentToken.Type {
	case TokenCommand:
		return true
	case TokenWhitespace:
		for i := s.TokenIndex - 1; i >= 0; i-- {
			switch s.Tokens[i].Type {
			case TokenWhitespace:
				continue
			case TokenOperator:
				return true
			default:
				return false
			}
		}
		return true
	default:
		return false
	}
}

// InArgumentPosition reports whether the cursor is past the command of its segment
func (s State) InArgumentPosition() bool {
	if s.CurrentToken == nil || s.CurrentToken.Type == TokenOperator {
		return false
	}
	return !s.InCommandPosition()
}

// FirstWord returns the first whitespace-separated word of the trimmed text
func (s State) FirstWord() string {
	fields := strings.Fields(s.RawText)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
