package nlp

import "strings"

// aliases maps common spellings of one technology to a single key.
var aliases = map[string]string{
	"postgresql": "postgres",
	"kubernetes": "k8s",
	"golang":     "go",
	"javascript": "js",
	"typescript": "ts",
	"rest api":   "rest",
	"restful":    "rest",
	"ci cd":      "cicd",
}

// SkillKey is the comparison key of a skill phrase: normalized, with
// well-known aliases folded together, token by token for multi-word phrases.
func SkillKey(skill string) string {
	base := NormalizeText(skill)
	if base == "" {
		return ""
	}
	if a, ok := aliases[base]; ok {
		return a
	}
	parts := strings.Split(base, " ")
	for i, p := range parts {
		if a, ok := aliases[p]; ok {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}

// UniquePhrases cleans items, drops empties and removes duplicates by
// SkillKey, keeping the first spelling seen. The result is never nil.
func UniquePhrases(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = CleanPhrase(it)
		key := SkillKey(it)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
