package core

import (
	"fmt"
	"strings"
)

// maxNotesLines caps the extracted section body; anything longer is cut.
const maxNotesLines = 30

// DefaultNotes synthesizes the fallback notes text used whenever no
// changelog section can be extracted for a version.
func DefaultNotes(version Version) string {
	return fmt.Sprintf("Version %s", version.String())
}

// ExtractNotes locates the changelog section documenting a version and
// returns its normalized body. Lookup always uses the base triple, since
// changelogs document base versions only; a -beta.N target is stripped.
//
// Header shapes are tried in priority order: "[vX.Y.Z]", "[X.Y.Z]",
// "vX.Y.Z", "X.Y.Z", each at the two accepted heading levels. The first
// shape matching any header in the document wins. The body runs to the
// next header at either level, trimmed per line, capped at maxNotesLines,
// with leading and trailing blank lines dropped but interior blanks kept
// as paragraph separators.
//
// ok is false when no header matches or the body is empty after trimming;
// callers fall back to DefaultNotes.
func ExtractNotes(document string, version Version) (string, bool) {
	if strings.TrimSpace(document) == "" {
		return "", false
	}
	lines := strings.Split(document, "\n")
	base := version.BaseString()
	shapes := []string{
		"[v" + base + "]",
		"[" + base + "]",
		"v" + base,
		base,
	}

	start := -1
	for _, shape := range shapes {
		for i, line := range lines {
			text, ok := headerText(line)
			if !ok {
				continue
			}
			if text == shape || strings.HasPrefix(text, shape+" ") {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return "", false
	}

	var body []string
	for _, line := range lines[start+1:] {
		if _, ok := headerText(line); ok {
			break
		}
		body = append(body, strings.TrimSpace(line))
	}
	if len(body) > maxNotesLines {
		body = body[:maxNotesLines]
	}
	body = trimBlankEdges(body)
	if len(body) == 0 {
		return "", false
	}
	return strings.Join(body, "\n"), true
}

// headerText strips the heading marker from a primary or secondary section
// header and returns the remaining text.
func headerText(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, marker := range []string{"### ", "## "} {
		if strings.HasPrefix(trimmed, marker) {
			return strings.TrimSpace(trimmed[len(marker):]), true
		}
	}
	return "", false
}

func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}
