package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "transposition", word: "gti", want: "git"},
		{name: "uppercase input", word: "GTI", want: "git"},
		{name: "missing letter", word: "grp", want: "grep"},
		{name: "extra letter", word: "dockerr", want: "docker"},
		{name: "exact match needs no suggestion", word: "git", want: ""},
		{name: "too short", word: "g", want: ""},
		{name: "too long", word: "abcdefghijklmnopqrstu", want: ""},
		{name: "nothing close", word: "zzzzzzzz", want: ""},
		{name: "empty", word: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.word))
		})
	}
}

func TestEngine_TieBreaksOnCorpusOrder(t *testing.T) {
	e := New([]string{"cat", "bat"})

	// "xat" is one edit from both
	assert.Equal(t, "cat", e.Suggest("xat"))

	e = New([]string{"bat", "cat"})
	assert.Equal(t, "bat", e.Suggest("xat"))
}

func TestEngine_DistanceLimitGrowsWithLength(t *testing.T) {
	e := New([]string{"kubernetes"})

	// 10 letters allows 5 edits
	assert.Equal(t, "kubernetes", e.Suggest("kubrnets"))
	assert.Equal(t, "", e.Suggest("kxxxxxxxxs"))
}

func TestEngine_CountsCharactersNotBytes(t *testing.T) {
	// One character, two bytes
	assert.Equal(t, "", New([]string{"ab"}).Suggest("é"))

	// Six characters allow three edits, not six
	assert.Equal(t, "", New([]string{"abcdef"}).Suggest("éééééé"))

	// Eleven characters are within the length bound
	assert.Equal(t, "ééééééééééa", New([]string{"ééééééééééa"}).Suggest("ééééééééééé"))
}

func TestEngine_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, "git", Suggest("gti"))
	}
}
