package cli

import (
	"fmt"
	"strings"
)

// Commands lists the registered slash commands
func Commands(params Params) error {
	rt, err := load(params)
	if err != nil {
		return err
	}

	for _, c := range rt.comps.Registry.List() {
		line := valueStyle.Render("/" + c.Name)
		if len(c.Aliases) > 0 {
			line += keyStyle.Render(" (/" + strings.Join(c.Aliases, ", /") + ")")
		}
		if c.Description != "" {
			line += "  " + keyStyle.Render(c.Description)
		}
		fmt.Fprintln(rt.out, line)
	}
	return nil
}
