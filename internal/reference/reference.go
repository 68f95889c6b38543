package reference

import (
	"regexp"
	"strings"
)

// NoneFound is the sentinel entry returned when a document contains no
// recognizable reference list.
const NoneFound = "No references found."

// entryPattern matches one bracket-numbered reference entry: a "[N]" label
// followed by whitespace and arbitrary content, running across newlines until
// a blank line or the end of the input. Lazy matching keeps two entries
// separated by a blank line from merging into one.
var entryPattern = regexp.MustCompile(`(?s)\[\d+\]\s.+?(?:\n\n|\z)`)

// Extract returns every reference entry found in text, in order of
// appearance. A wrapped entry (single newlines, no blank line) stays one
// entry. When nothing matches the result is the single NoneFound sentinel,
// never an empty slice. Pure function; text is not modified.
func Extract(text string) []string {
	matches := entryPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{NoneFound}
	}
	refs := make([]string, len(matches))
	for i, m := range matches {
		refs[i] = strings.TrimSuffix(m, "\n\n")
	}
	return refs
}
