package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/promptline/internal/status"
)

// Status displays the active promptline configuration
func Status(params Params) error {
	rt, err := load(params)
	if err != nil {
		return err
	}

	data := status.Collect(rt.dir, rt.cfg, rt.files, rt.comps)
	fmt.Fprintln(rt.out, status.Render(data))
	return nil
}
