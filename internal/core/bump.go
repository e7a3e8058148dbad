package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundle-release/internal/types"
)

// HighestSeverity folds per-service change severities into the single
// severity driving the aggregate bump.
func HighestSeverity(severities map[string]types.ChangeSeverity) types.ChangeSeverity {
	highest := types.SeverityNone
	for _, severity := range severities {
		if severity > highest {
			highest = severity
		}
	}
	return highest
}

// NextVersion computes the next aggregate manifest version for a channel.
//
// contentChanged carries the before/after fingerprint comparison: a run
// where no version tag moved but some digest did still deserves a patch
// bump. When neither versions nor content changed the run is a legitimate
// no-op, reported as a "no change needed" precondition error that callers
// map to a distinct exit path rather than a failure.
//
// On the beta channel a patch-level change to a current pre-release stays
// on the same base and increments the beta counter; minor and major
// changes (and any change when the current version is a bare release)
// advance the base and reset the counter to beta.0. A missing or
// unstructured suffix resets to beta.0.
func NextVersion(current Version, channel types.Channel, highest types.ChangeSeverity, contentChanged bool) (Version, error) {
	if highest == types.SeverityNone {
		if !contentChanged {
			return Version{}, ErrNoChange()
		}
		highest = types.SeverityPatch
	}

	major, minor, patch := bumpBase(current, highest)

	if channel == types.ChannelStable {
		return ParseVersion(fmt.Sprintf("%d.%d.%d", major, minor, patch))
	}

	if highest == types.SeverityPatch && current.IsPreRelease() {
		seq, structured := current.BetaSequence()
		next := uint64(0)
		if structured {
			next = seq + 1
		}
		return ParseVersion(fmt.Sprintf("%s-beta.%d", current.BaseString(), next))
	}
	return ParseVersion(fmt.Sprintf("%d.%d.%d-beta.0", major, minor, patch))
}

func bumpBase(current Version, severity types.ChangeSeverity) (uint64, uint64, uint64) {
	switch severity {
	case types.SeverityMajor:
		return current.Major() + 1, 0, 0
	case types.SeverityMinor:
		return current.Major(), current.Minor() + 1, 0
	default:
		return current.Major(), current.Minor(), current.Patch() + 1
	}
}

const noChangeMsg = "no change needed"

// ErrNoChange is the sentinel for a clean no-op run.
func ErrNoChange() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(noChangeMsg)
}

// IsNoChange reports whether an error is the no-op sentinel.
func IsNoChange(err error) bool {
	if err == nil {
		return false
	}
	return errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition &&
		errorMessageHasPrefix(err, noChangeMsg)
}

func errorMessageHasPrefix(err error, prefix string) bool {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) {
		return strings.HasPrefix(builder.Msg, prefix)
	}
	return strings.HasPrefix(err.Error(), prefix)
}
