package input

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/promptline/internal/mode"
)

func types(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Type
	}
	return out
}

func values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		values []string
		types  []TokenType
	}{
		{
			name:   "empty",
			text:   "",
			values: []string{},
			types:  []TokenType{},
		},
		{
			name:   "command with arguments",
			text:   "git commit -m",
			values: []string{"git", " ", "commit", " ", "-m"},
			types:  []TokenType{TokenCommand, TokenWhitespace, TokenArgument, TokenWhitespace, TokenOption},
		},
		{
			name:   "pipeline resets command position",
			text:   "ls ./src|grep go",
			values: []string{"ls", " ", "./src", "|", "grep", " ", "go"},
			types: []TokenType{
				TokenCommand, TokenWhitespace, TokenPath, TokenOperator,
				TokenCommand, TokenWhitespace, TokenArgument,
			},
		},
		{
			name:   "longest operator wins",
			text:   "a >> b && c",
			values: []string{"a", " ", ">>", " ", "b", " ", "&&", " ", "c"},
			types: []TokenType{
				TokenCommand, TokenWhitespace, TokenOperator, TokenWhitespace, TokenCommand,
				TokenWhitespace, TokenOperator, TokenWhitespace, TokenCommand,
			},
		},
		{
			name:   "quoted string with escape",
			text:   `echo "say \"hi\"" done`,
			values: []string{"echo", " ", `"say \"hi\""`, " ", "done"},
			types:  []TokenType{TokenCommand, TokenWhitespace, TokenString, TokenWhitespace, TokenArgument},
		},
		{
			name:   "unterminated string runs to end",
			text:   `echo 'it is | open`,
			values: []string{"echo", " ", `'it is | open`},
			types:  []TokenType{TokenCommand, TokenWhitespace, TokenString},
		},
		{
			name:   "entity reference",
			text:   "explain @main.go",
			values: []string{"explain", " ", "@main.go"},
			types:  []TokenType{TokenCommand, TokenWhitespace, TokenEntity},
		},
		{
			name:   "path is never in command position",
			text:   "./run.sh ../x",
			values: []string{"./run.sh", " ", "../x"},
			types:  []TokenType{TokenCommand, TokenWhitespace, TokenPath},
		},
		{
			name:   "leading whitespace keeps command position",
			text:   "  cd",
			values: []string{"  ", "cd"},
			types:  []TokenType{TokenWhitespace, TokenCommand},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.text)
			if diff := cmp.Diff(tt.values, values(tokens)); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.types, types(tokens)); diff != "" {
				t.Errorf("types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenize_Reconstructs(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"git status",
		"ls -la | grep foo > out.txt 2>&1",
		`echo "unterminated \`,
		`a'b"c`,
		"cat <<EOF;;&&||",
		"\ttabs\nand\rreturns ",
		"héllo wörld @ünïcode",
	}

	for _, text := range inputs {
		tokens := Tokenize(text)
		var b strings.Builder
		prevEnd := 0
		for _, tok := range tokens {
			assert.Equal(t, prevEnd, tok.Start, "tokens of %q are contiguous", text)
			assert.Equal(t, text[tok.Start:tok.End], tok.Value)
			prevEnd = tok.End
			b.WriteString(tok.Value)
		}
		assert.Equal(t, text, b.String())
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "command", TokenCommand.String())
	assert.Equal(t, "whitespace", TokenWhitespace.String())
	assert.Equal(t, "unknown", TokenType(99).String())
}

func TestNewState(t *testing.T) {
	t.Run("cursor at end of word", func(t *testing.T) {
		s := NewState("git sta", 7, mode.Shell, "/repo", nil)
		require.NotNil(t, s.CurrentToken)
		assert.Equal(t, "sta", s.CurrentToken.Value)
		assert.Equal(t, "sta", s.Prefix)
		assert.Equal(t, 2, s.TokenIndex)
		assert.True(t, s.InArgumentPosition())
		assert.False(t, s.InCommandPosition())
	})

	t.Run("cursor inside word", func(t *testing.T) {
		s := NewState("grep foo", 2, mode.Shell, "", nil)
		assert.Equal(t, "gr", s.Prefix)
		assert.True(t, s.InCommandPosition())
	})

	t.Run("cursor between words on boundary keeps the word", func(t *testing.T) {
		s := NewState("git status", 3, mode.Shell, "", nil)
		assert.Equal(t, "git", s.CurrentToken.Value)
		assert.Equal(t, "git", s.Prefix)
	})

	t.Run("trailing whitespace after operator", func(t *testing.T) {
		s := NewState("ls | ", 5, mode.Shell, "", nil)
		assert.Equal(t, TokenWhitespace, s.CurrentToken.Type)
		assert.Empty(t, s.Prefix)
		assert.True(t, s.InCommandPosition())
	})

	t.Run("trailing whitespace after command", func(t *testing.T) {
		s := NewState("cat ", 4, mode.Shell, "", nil)
		assert.Empty(t, s.Prefix)
		assert.True(t, s.InArgumentPosition())
	})

	t.Run("entity trigger", func(t *testing.T) {
		s := NewState("explain @src/ma", 15, mode.NaturalLanguage, "", nil)
		assert.True(t, s.IsEntityTrigger)
		assert.Equal(t, "@src/ma", s.Prefix)
	})

	t.Run("slash command", func(t *testing.T) {
		s := NewState("/he", 3, mode.Slash, "", nil)
		assert.True(t, s.IsSlashCommand)
		assert.Equal(t, "/he", s.Prefix)
	})

	t.Run("cursor is clamped", func(t *testing.T) {
		assert.Equal(t, 3, NewState("abc", 10, mode.Shell, "", nil).CursorPos)
		assert.Equal(t, 0, NewState("abc", -4, mode.Shell, "", nil).CursorPos)
	})

	t.Run("empty text", func(t *testing.T) {
		s := NewState("", 0, mode.NaturalLanguage, "", nil)
		assert.Nil(t, s.CurrentToken)
		assert.Empty(t, s.Tokens)
		assert.True(t, s.InCommandPosition())
		assert.False(t, s.InArgumentPosition())
		assert.Equal(t, "", s.FirstWord())
	})
}

func TestNewState_CopiesHistory(t *testing.T) {
	history := []HistoryEntry{{Command: "git status", Timestamp: time.Now()}}
	s := NewState("git", 3, mode.Shell, "", history)

	history[0].Command = "changed"
	assert.Equal(t, "git status", s.History[0].Command)
}

func TestUpdateWithTokens(t *testing.T) {
	s := NewState("git", 3, mode.Shell, "", nil)
	s.RawText = "git log"
	s.CursorPos = 7

	updated := UpdateWithTokens(s)
	assert.Equal(t, "log", updated.Prefix)
	assert.Equal(t, "git", s.Prefix, "the original snapshot is unchanged")
	assert.Equal(t, "git", updated.FirstWord())
}
