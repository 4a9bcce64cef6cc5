package cli

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/promptline/internal/suggest"
)

// SuggestParams contains parameters for the Suggest command
type SuggestParams struct {
	Params
	Word string
}

// Suggest prints the closest known command for a mistyped word. A word
// starting with "/" is matched against slash commands.
func Suggest(params SuggestParams) error {
	rt, err := load(params.Params)
	if err != nil {
		return err
	}

	if strings.HasPrefix(params.Word, "/") {
		matches := rt.comps.Registry.Suggest(params.Word, 3)
		if len(matches) == 0 {
			fmt.Fprintln(rt.out, keyStyle.Render("No suggestion"))
			return nil
		}
		for _, m := range matches {
			fmt.Fprintln(rt.out, valueStyle.Render("/"+m))
		}
		return nil
	}

	if s := suggest.Suggest(params.Word); s != "" {
		fmt.Fprintln(rt.out, valueStyle.Render(s))
		return nil
	}
	fmt.Fprintln(rt.out, keyStyle.Render("No suggestion"))
	return nil
}
