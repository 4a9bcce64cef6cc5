package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/NikitaCOEUR/promptline/internal/menu"
	"github.com/NikitaCOEUR/promptline/internal/session"
)

// MenuParams contains parameters for the Menu command
type MenuParams struct {
	Params
	Text string
	// Cursor is a byte offset into Text; negative means end of line
	Cursor int
	// Keys is an escaped key script applied to the open menu, e.g. `\t\t\r`
	Keys string
}

// Menu draws the completion menu for a line below the current prompt,
// replays Keys against it and prints the resulting line
func Menu(ctx context.Context, params MenuParams) error {
	keys, err := parseKeys(params.Keys)
	if err != nil {
		return err
	}

	rt, err := load(params.Params)
	if err != nil {
		return err
	}

	cursor := params.Cursor
	if cursor < 0 {
		cursor = len(params.Text)
	}

	s := rt.newSession(session.Collaborators{}, session.WithSink(rt.out))
	if _, err := io.WriteString(rt.out, params.Text); err != nil {
		return err
	}
	s.Update(params.Text, cursor)
	s.RequestCompletions(ctx)

	for _, k := range keys {
		res := s.HandleKey(k)
		rt.log.Debug().Str("key", k.String()).Str("action", res.Action.String()).Bool("handled", res.Handled).Msg("Key")
		if res.Action == menu.ActionAccept && res.Handled {
			break
		}
	}

	state := s.State()
	fmt.Fprintf(rt.out, "\r\n%s %s\n", keyStyle.Render("Line:"), valueStyle.Render(strconv.Quote(state.RawText)))
	return nil
}
