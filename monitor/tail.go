package monitor

import "strings"

// Tail tracks which part of a growing full-history dump is new.
//
// The log source offers no cursor, so the second half of the previous dump
// (by line count) is kept as an anchor. Everything after the first
// line-aligned occurrence of the anchor in the next dump is new. A large
// anchor stays findable when the source re-renders or drops a few lines
// near the boundary, but this is a heuristic: if the circular buffer
// wrapped past the anchor between two polls, the anchor is lost.
type Tail struct {
	anchor string
	primed bool
}

// Primed reports whether a baseline dump has been seen.
func (t *Tail) Primed() bool {
	return t.primed
}

// Prime sets an empty baseline so that the next dump is new in full.
func (t *Tail) Prime() {
	t.anchor = ""
	t.primed = true
}

// Next returns the lines of dump appended since the previous call, oldest
// first. The first call only records a baseline and returns nothing.
// found is false when the previous anchor does not occur in dump; all of
// dump is then reported as new.
func (t *Tail) Next(dump string) (lines []string, found bool) {
	if dump != "" && !strings.HasSuffix(dump, "\n") {
		dump += "\n"
	}

	if !t.primed {
		t.primed = true
		t.anchor = anchorOf(dump)
		return nil, true
	}

	off, found := locate(dump, t.anchor)
	t.anchor = anchorOf(dump)
	return splitLines(dump[off:]), found
}

// anchorOf returns the second half of dump's lines, newline terminated.
func anchorOf(dump string) string {
	lines := splitLines(dump)
	tail := lines[len(lines)/2:]
	if len(tail) == 0 {
		return ""
	}
	return strings.Join(tail, "\n") + "\n"
}

// locate returns the offset just past the first occurrence of anchor that
// starts on a line boundary.
func locate(dump, anchor string) (int, bool) {
	if anchor == "" {
		return 0, true
	}

	for i := 0; i+len(anchor) <= len(dump); {
		j := strings.Index(dump[i:], anchor)
		if j < 0 {
			break
		}
		j += i
		if j == 0 || dump[j-1] == '\n' {
			return j + len(anchor), true
		}
		i = j + 1
	}
	return 0, false
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
