package extraction

import (
	"strings"
)

// ExtractSkills returns the vocabulary skills whose names occur in the text as
// case-insensitive substrings. The result is deduplicated and follows
// vocabulary order, so repeated calls on the same text are identical.
func ExtractSkills(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var matched []string
	for _, entry := range Vocabulary {
		if strings.Contains(lower, strings.ToLower(entry.Name)) {
			matched = append(matched, entry.Name)
		}
	}
	return matched
}

// ExtractFromSources matches against the concatenation of several text
// sources, typically a parsed resume plus a job description.
func ExtractFromSources(sources ...string) []string {
	var sb strings.Builder
	for _, s := range sources {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	return ExtractSkills(sb.String())
}
