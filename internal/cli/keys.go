package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NikitaCOEUR/promptline/internal/menu"
)

// parseKeys turns an escaped key script such as `\t\t\r` into keys
func parseKeys(script string) ([]menu.Key, error) {
	if script == "" {
		return nil, nil
	}
	raw, err := strconv.Unquote(`"` + strings.ReplaceAll(script, `"`, `\"`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("invalid key script %q: %w", script, err)
	}

	var keys []menu.Key
	for _, seq := range splitKeys(raw) {
		keys = append(keys, menu.ParseKey([]byte(seq)))
	}
	return keys, nil
}

// splitKeys cuts raw terminal input into one sequence per key
func splitKeys(raw string) []string {
	var out []string
	for len(raw) > 0 {
		n := 1
		switch {
		case len(raw) >= 3 && (strings.HasPrefix(raw, "\x1b[") || strings.HasPrefix(raw, "\x1bO")):
			n = 3
		case strings.HasPrefix(raw, "\r\n"):
			n = 2
		}
		out = append(out, raw[:n])
		raw = raw[n:]
	}
	return out
}
