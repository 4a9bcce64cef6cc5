package completion

import "github.com/NikitaCOEUR/promptline/internal/input"

// Apply returns the line and cursor after accepting c. The current token is
// replaced, or the whole line when c.ReplaceInput is set; on whitespace the
// value is inserted at the cursor. The cursor lands after the inserted value.
func Apply(state input.State, c Completion) (string, int) {
	if c.ReplaceInput {
		return c.Value, len(c.Value)
	}

	start, end := state.CursorPos, state.CursorPos
	if tok := state.CurrentToken; tok != nil && tok.Type != input.TokenWhitespace && tok.Type != input.TokenOperator {
		start, end = tok.Start, tok.End
	}

	text := state.RawText[:start] + c.Value + state.RawText[end:]
	return text, start + len(c.Value)
}
