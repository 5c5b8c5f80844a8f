package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases s, turns punctuation into spaces and collapses runs
// of whitespace. "+" and "#" survive so C++ and C# stay distinct from C.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CleanPhrase trims s and collapses inner whitespace, keeping the original case.
func CleanPhrase(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
