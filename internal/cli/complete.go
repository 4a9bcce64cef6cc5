package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/NikitaCOEUR/promptline/internal/session"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	Params
	Text string
	// Cursor is a byte offset into Text; negative means end of line
	Cursor int
}

// Complete prints the completions offered at the cursor, best first
func Complete(ctx context.Context, params CompleteParams) error {
	rt, err := load(params.Params)
	if err != nil {
		return err
	}

	cursor := params.Cursor
	if cursor < 0 {
		cursor = len(params.Text)
	}

	s := rt.newSession(session.Collaborators{})
	s.Update(params.Text, cursor)
	list, _ := s.RequestCompletions(ctx)

	if len(list) == 0 {
		fmt.Fprintln(rt.out, keyStyle.Render("No completions"))
		return nil
	}

	tw := tabwriter.NewWriter(rt.out, 0, 4, 2, ' ', 0)
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Value, c.Group, c.Score, c.Description)
	}
	return tw.Flush()
}
