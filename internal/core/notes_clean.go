package core

import (
	"regexp"
	"strings"
)

// logTag is prefixed to internal progress lines; it must never leak into
// published notes, so any line carrying it is stripped.
const logTag = "[bundle-release]"

var (
	versionLinePattern = regexp.MustCompile(`^Version \d+\.\d+\.\d+(?:-[0-9A-Za-z.]+)?$`)
	separatorPattern   = regexp.MustCompile(`^-{10,}$`)
)

// CleanNotes sanitizes free-form notes text before persistence. It applies
// to both extracted changelog sections and anything a human typed in the
// edit step: comment lines (leading '#'), internal log-tag lines, and long
// dash separators are dropped; consecutive duplicate "Version X.Y.Z" lines
// collapse to one; runs of blank lines collapse to a single blank; leading
// and trailing blanks are stripped.
//
// The result can legitimately come out empty. Callers must substitute the
// pre-clean default in that case so published notes are never blank.
func CleanNotes(text string) string {
	var kept []string
	prev := ""
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"):
			continue
		case strings.Contains(line, logTag):
			continue
		case separatorPattern.MatchString(trimmed):
			continue
		case trimmed == "" && prev == "":
			continue
		case versionLinePattern.MatchString(trimmed) && trimmed == prev:
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
		prev = trimmed
	}
	kept = trimBlankEdges(kept)
	return strings.Join(kept, "\n")
}
