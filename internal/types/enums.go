package types

import "strings"

type Channel string

const (
	ChannelStable Channel = "stable"
	ChannelBeta   Channel = "beta"
)

// ParseChannel maps a user-supplied channel name onto one of the two
// release tracks.
func ParseChannel(value string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "stable":
		return ChannelStable, true
	case "beta":
		return ChannelBeta, true
	default:
		return "", false
	}
}

// ChangeSeverity ranks how coarse a detected version change is. The zero
// value means no change; ordering is None < Patch < Minor < Major.
type ChangeSeverity int

const (
	SeverityNone ChangeSeverity = iota
	SeverityPatch
	SeverityMinor
	SeverityMajor
)

func (s ChangeSeverity) String() string {
	switch s {
	case SeverityPatch:
		return "patch"
	case SeverityMinor:
		return "minor"
	case SeverityMajor:
		return "major"
	default:
		return "none"
	}
}
