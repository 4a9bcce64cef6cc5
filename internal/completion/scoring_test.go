package completion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NikitaCOEUR/promptline/internal/input"
)

func TestPrefixScore(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		value  string
		want   int
	}{
		{name: "empty prefix", prefix: "", value: "git", want: 50},
		{name: "exact", prefix: "git", value: "git", want: 100},
		{name: "exact ignores case", prefix: "GIT", value: "git", want: 100},
		{name: "one letter of three", prefix: "g", value: "git", want: 86},
		{name: "one letter of two rounds half up", prefix: "g", value: "go", want: 90},
		{name: "two letters of three", prefix: "GI", value: "git", want: 93},
		{name: "one letter of four", prefix: "g", value: "grep", want: 85},
		{name: "no match", prefix: "x", value: "git", want: 0},
		{name: "prefix longer than value", prefix: "gitx", value: "git", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrefixScore(tt.prefix, tt.value))
		})
	}
}

func TestRecencyBonus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(ago time.Duration, cmd string) input.HistoryEntry {
		return input.HistoryEntry{Command: cmd, Timestamp: now.Add(-ago)}
	}

	tests := []struct {
		name    string
		value   string
		history []input.HistoryEntry
		want    int
	}{
		{name: "absent", value: "git", history: []input.HistoryEntry{at(0, "ls")}, want: 0},
		{name: "just used", value: "git", history: []input.HistoryEntry{at(0, "git")}, want: MaxRecencyBonus},
		{name: "half window", value: "git", history: []input.HistoryEntry{at(30*time.Minute, "git")}, want: 11},
		{name: "end of window", value: "git", history: []input.HistoryEntry{at(time.Hour, "git")}, want: 1},
		{name: "long ago", value: "git", history: []input.HistoryEntry{at(48*time.Hour, "git")}, want: 1},
		{name: "most recent use counts", value: "git", history: []input.HistoryEntry{
			at(30*time.Minute, "git"), at(3*time.Hour, "git"),
		}, want: 11},
		{name: "first word of a line", value: "git", history: []input.HistoryEntry{at(0, "git status")}, want: MaxRecencyBonus},
		{name: "future timestamp", value: "git", history: []input.HistoryEntry{at(-time.Minute, "git")}, want: MaxRecencyBonus},
		{name: "no history", value: "git", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecencyBonus(tt.value, tt.history, now))
		})
	}
}

func TestLengthPenalty(t *testing.T) {
	assert.Equal(t, 0, LengthPenalty(""))
	assert.Equal(t, 2, LengthPenalty("go"))
	assert.Equal(t, 2, LengthPenalty("git"))
	assert.Equal(t, 4, LengthPenalty("terraform-docs"))
}

func TestScore(t *testing.T) {
	now := time.Now()
	recent := []input.HistoryEntry{{Command: "git", Timestamp: now}}

	assert.Equal(t, 84, Score("g", "git", nil, now))
	assert.Equal(t, 88, Score("g", "go", nil, now))
	assert.Equal(t, 83, Score("g", "grep", nil, now))
	assert.Equal(t, 100, Score("git", "git", recent, now), "clamped to 100")
	assert.Equal(t, 0, Score("x", "git", recent, now), "no match ignores bonuses")
	assert.Equal(t, 48, Score("", "go", nil, now))
}

func TestSortCompletions(t *testing.T) {
	list := []Completion{
		{Value: "a", Group: GroupFile, Score: 90},
		{Value: "b", Group: GroupBuiltin, Score: 10},
		{Value: "c", Group: GroupFile, Score: 95},
		{Value: "d", Group: GroupBuiltin, Score: 10},
		{Value: "e", Group: GroupTopSuggestion, Score: 1},
	}
	original := append([]Completion(nil), list...)

	sorted := SortCompletions(list)

	values := make([]string, len(sorted))
	for i, c := range sorted {
		values[i] = c.Value
	}
	assert.Equal(t, []string{"e", "b", "d", "c", "a"}, values)
	assert.Equal(t, original, list, "input is not mutated")
	assert.Empty(t, SortCompletions(nil))
}

func TestGroup_String(t *testing.T) {
	assert.Equal(t, "recommended", GroupRecommendedCommand.String())
	assert.Equal(t, "other", Group(99).String())
	assert.Less(t, int(GroupTopSuggestion), int(GroupOther))
}

func TestCompletion_Label(t *testing.T) {
	assert.Equal(t, "git", Completion{Value: "git"}.Label())
	assert.Equal(t, "/h → /help", Completion{Value: "/help", Display: "/h → /help"}.Label())
}
