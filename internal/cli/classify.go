package cli

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/promptline/internal/mode"
)

// ClassifyParams contains parameters for the Classify command
type ClassifyParams struct {
	Params
	Text string
	// Sync runs only the non-blocking pass used while typing
	Sync bool
}

// Classify prints the mode of a line
func Classify(ctx context.Context, params ClassifyParams) error {
	rt, err := load(params.Params)
	if err != nil {
		return err
	}

	var res mode.Result
	if params.Sync {
		res = rt.comps.Classifier.ClassifySync(params.Text)
	} else {
		res = rt.comps.Classifier.Classify(ctx, params.Text)
	}

	fmt.Fprintln(rt.out, keyStyle.Render("Mode: ")+renderMode(res.Mode))
	fmt.Fprintln(rt.out, keyStyle.Render("Rule: ")+valueStyle.Render(res.Rule))
	definitive := warningStyle.Render("no")
	if res.Definitive {
		definitive = successStyle.Render("yes")
	}
	fmt.Fprintln(rt.out, keyStyle.Render("Definitive: ")+definitive)
	if res.Suggestion != "" {
		fmt.Fprintln(rt.out, keyStyle.Render("Did you mean: ")+valueStyle.Render(res.Suggestion))
	}
	return nil
}
