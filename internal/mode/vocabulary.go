package mode

// Curated word lists backing the rule table. Keys are lowercase.

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// promptWorthy are real commands that, typed alone, are as likely a question
// as a command
var promptWorthy = set("who", "date", "time", "man", "cal", "info")

// naturalWords are words that never start a command line on their own.
// A line made only of these is natural language.
var naturalWords = set(
	"a", "about", "all", "also", "am", "an", "and", "any", "anything", "are",
	"awesome", "bad", "be", "because", "been", "best", "better", "bug", "but",
	"by", "can", "cool", "could", "did", "do", "does", "doing", "done", "explain",
	"fine", "for", "from", "good", "great", "had", "has", "have", "he", "hello",
	"help", "her", "here", "hey", "hi", "him", "his", "how", "i", "if", "in",
	"is", "it", "its", "just", "me", "more", "my", "nice", "no", "not", "now",
	"of", "ok", "okay", "on", "or", "our", "please", "really", "right", "she",
	"should", "so", "some", "something", "sorry", "sure", "tell", "thank",
	"thanks", "that", "the", "their", "them", "then", "there", "these", "they",
	"thing", "this", "those", "to", "too", "us", "very", "was", "we", "well",
	"were", "what", "when", "where", "why", "will", "with", "would", "wow",
	"you", "your", "code", "function", "files", "project", "why's",
	"what's", "it's", "that's", "i'm", "don't", "can't", "let's",
)

// questionWords open a question. "which" is deliberately absent: it is a
// real command that normally takes exactly one argument.
var questionWords = set(
	"what", "why", "how", "when", "where", "who", "whose", "whom",
	"is", "are", "does", "do", "did", "can", "could", "would", "should", "will",
)

// questionOnly are question words that are never valid commands, so they
// count as natural language even when typed alone
var questionOnly = set("what", "why", "how", "when", "where", "whose", "whom")

// conflictAlone says how a word that is both a command and common English is
// classified when typed alone. Dangerous or irreversible commands default to
// natural language; the rest ask the user.
var conflictAlone = map[string]Mode{
	"yes":      NaturalLanguage,
	"kill":     NaturalLanguage,
	"shutdown": NaturalLanguage,
	"reboot":   NaturalLanguage,
	"halt":     NaturalLanguage,
	"which":    NaturalLanguage,
	"say":      NaturalLanguage,
	"test":     Ambiguous,
	"make":     Ambiguous,
	"watch":    Ambiguous,
	"go":       Ambiguous,
	"find":     Ambiguous,
	"sort":     Ambiguous,
	"touch":    Ambiguous,
	"open":     Ambiguous,
	"look":     Ambiguous,
	"split":    Ambiguous,
	"join":     Ambiguous,
	"file":     Ambiguous,
	"less":     Ambiguous,
	"top":      Ambiguous,
	"free":     Ambiguous,
}
