package reference

import (
	"strings"
	"testing"
)

func TestExtractNoMatches(t *testing.T) {
	for _, text := range []string{
		"",
		"plain prose with no citations at all",
		"mentions [brackets] but no numbered labels",
	} {
		refs := Extract(text)
		if len(refs) != 1 || refs[0] != NoneFound {
			t.Errorf("Extract(%q) = %v, want single sentinel %q", text, refs, NoneFound)
		}
	}
}

func TestExtractOrderedEntries(t *testing.T) {
	text := "Some conclusion text.\n\n" +
		"[1] Smith, J. A study of things. Journal of Stuff, 2019.\n\n" +
		"[2] Doe, M. Another study. Proc. of Items, 2020.\n\n" +
		"[3] Roe, K. Final word. 2021."
	refs := Extract(text)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references, got %d: %v", len(refs), refs)
	}
	for i, want := range []string{"[1]", "[2]", "[3]"} {
		if !strings.HasPrefix(refs[i], want) {
			t.Errorf("reference %d = %q, want prefix %q", i, refs[i], want)
		}
	}
}

func TestExtractWrappedEntryStaysOne(t *testing.T) {
	// A single newline inside an entry is a line wrap, not a delimiter.
	text := "[1] Smith, J. A very long title that\nwraps onto a second line. 2019.\n\n[2] Doe, M. Short one. 2020."
	refs := Extract(text)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
	}
	if !strings.Contains(refs[0], "wraps onto a second line") {
		t.Errorf("first reference lost its wrapped tail: %q", refs[0])
	}
}

func TestExtractBlankLineNeverMerges(t *testing.T) {
	text := "[1] First entry.\n\n[2] Second entry."
	refs := Extract(text)
	if len(refs) != 2 {
		t.Fatalf("expected 2 references, got %d: %v", len(refs), refs)
	}
	if strings.Contains(refs[0], "[2]") {
		t.Errorf("first reference swallowed the second: %q", refs[0])
	}
}

func TestExtractConsecutiveLabelsWithoutBlankLine(t *testing.T) {
	// Without a blank line between them, the pattern consumes up to the next
	// boundary, so both labels land in one entry.
	text := "[1] First entry.\n[2] Second entry.\n\ntrailing prose"
	refs := Extract(text)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d: %v", len(refs), refs)
	}
	if !strings.Contains(refs[0], "[2]") {
		t.Errorf("entry missing the run-on label: %q", refs[0])
	}
}

func TestExtractEntryAtEndOfText(t *testing.T) {
	refs := Extract("[12] Last entry with no trailing newline")
	if len(refs) != 1 || !strings.HasPrefix(refs[0], "[12]") {
		t.Fatalf("unexpected result: %v", refs)
	}
}
