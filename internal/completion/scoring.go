package completion

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/NikitaCOEUR/promptline/internal/input"
)

const (
	// EmptyPrefixScore is the flat score when nothing has been typed yet
	EmptyPrefixScore = 50
	// ExactMatchScore is the score of a value equal to the prefix
	ExactMatchScore = 100
	// MaxRecencyBonus is the bonus of a value used right now
	MaxRecencyBonus = 20
	// RecencyWindow is how long the recency bonus takes to decay to 1
	RecencyWindow = time.Hour
)

// PrefixScore rates how well prefix matches the start of value, ignoring case
func PrefixScore(prefix, value string) int {
	if prefix == "" {
		return EmptyPrefixScore
	}
	p := strings.ToLower(prefix)
	v := strings.ToLower(value)

	switch {
	case p == v:
		return ExactMatchScore
	case strings.HasPrefix(v, p):
		return int(math.Round(80 + 19*float64(len(p))/float64(len(v))))
	default:
		return 0
	}
}

// RecencyBonus rewards values found in history. The most recent use counts:
// the bonus decays linearly from MaxRecencyBonus to 1 over RecencyWindow and
// stays at 1 afterwards.
func RecencyBonus(value string, history []input.HistoryEntry, now time.Time) int {
	var latest time.Time
	found := false
	for _, h := range history {
		if h.Command != value && firstField(h.Command) != value {
			continue
		}
		if !found || h.Timestamp.After(latest) {
			latest = h.Timestamp
			found = true
		}
	}
	if !found {
		return 0
	}

	elapsed := now.Sub(latest)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= RecencyWindow {
		return 1
	}
	frac := float64(elapsed) / float64(RecencyWindow)
	return int(math.Round(MaxRecencyBonus - (MaxRecencyBonus-1)*frac))
}

// LengthPenalty slightly favors shorter values
func LengthPenalty(value string) int {
	return int(math.Round(math.Log2(float64(len(value) + 1))))
}

// Score combines prefix quality, recency and length into 0..100.
// A value that does not match the prefix always scores 0.
func Score(prefix, value string, history []input.HistoryEntry, now time.Time) int {
	ps := PrefixScore(prefix, value)
	if ps == 0 {
		return 0
	}
	s := ps + RecencyBonus(value, history, now) - LengthPenalty(value)
	switch {
	case s < 0:
		return 0
	case s > 100:
		return 100
	default:
		return s
	}
}

// SortCompletions returns a copy of list ordered by group, then score
// descending. Equal elements keep their relative order.
func SortCompletions(list []Completion) []Completion {
	out := make([]Completion, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Score > out[j].Score
	})
	return out
}

func firstField(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
