package evaluator

import (
	"strings"

	"github.com/sells-group/namecast/internal/model"
)

// problemWords maps a lower-case name to the languages where it carries an
// unfortunate meaning.
var problemWords = map[string]map[string]string{
	"mist": {"german": "manure/dung"},
	"fart": {"scandinavian": "speed"},
	"nova": {"spanish": "doesn't go (no va)"},
}

// DefaultLanguages are checked when no languages are configured.
var DefaultLanguages = []string{"spanish", "french", "german", "mandarin", "japanese", "portuguese", "arabic"}

// CheckInternational reports, per language, whether name has a known
// problematic meaning. A nil languages slice uses DefaultLanguages.
func CheckInternational(name string, languages []string) map[string]model.InternationalResult {
	if languages == nil {
		languages = DefaultLanguages
	}

	meanings := problemWords[strings.ToLower(strings.TrimSpace(name))]
	out := make(map[string]model.InternationalResult, len(languages))
	for _, lang := range languages {
		meaning, ok := meanings[lang]
		out[lang] = model.InternationalResult{HasIssue: ok, Meaning: meaning}
	}
	return out
}
