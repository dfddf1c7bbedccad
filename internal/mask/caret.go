package mask

import "regexp"

// DigitToken matches the runes most masks treat as meaningful.
var DigitToken = regexp.MustCompile(`\d`)

// CaretAfterFormat recomputes a caret position after a reformat. It counts
// the meaningful runes (those matching token) before the caret in the old
// text, then returns the position just after the same count of meaningful
// runes in the formatted text. This keeps the caret in place when a
// separator is inserted or removed mid-string instead of jumping to the end.
func CaretAfterFormat(old string, caret int, formatted string, token *regexp.Regexp) int {
	if token == nil {
		token = DigitToken
	}
	if caret < 0 {
		caret = 0
	}
	oldRunes := []rune(old)
	if caret > len(oldRunes) {
		caret = len(oldRunes)
	}

	meaningful := 0
	for _, r := range oldRunes[:caret] {
		if token.MatchString(string(r)) {
			meaningful++
		}
	}
	if meaningful == 0 {
		return 0
	}

	seen := 0
	for i, r := range []rune(formatted) {
		if token.MatchString(string(r)) {
			seen++
			if seen == meaningful {
				return i + 1
			}
		}
	}
	return len([]rune(formatted))
}
