package core

import (
	"fmt"
	"strconv"
	"strings"

	semver "github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundle-release/internal/types"
)

const betaPrefix = "beta."

// Version is an immutable parsed MAJOR.MINOR.PATCH[-preRelease] version.
// Ordering and change classification look only at the base triple; the
// pre-release tag is carried along but never dominates a base comparison.
type Version struct {
	v *semver.Version
}

// ParseVersion parses a version string strictly: all three components must
// be present and numeric. Lenient coercion ("1.2" -> "1.2.0") is refused
// because a manifest or tag that omits components is a data error.
func ParseVersion(value string) (Version, error) {
	parsed, err := semver.StrictNewVersion(strings.TrimSpace(value))
	if err != nil {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("malformed version %q", value)).
			WithCause(err)
	}
	return Version{v: parsed}, nil
}

func (v Version) Major() uint64 { return v.v.Major() }
func (v Version) Minor() uint64 { return v.v.Minor() }
func (v Version) Patch() uint64 { return v.v.Patch() }

// PreRelease returns the raw pre-release tag, empty for release versions.
func (v Version) PreRelease() string { return v.v.Prerelease() }

func (v Version) IsPreRelease() bool { return v.v.Prerelease() != "" }

// BetaSequence extracts N from a structured "beta.N" pre-release tag. The
// second return is false for release versions and for tags outside that
// shape, which bump logic treats as present-but-unstructured.
func (v Version) BetaSequence() (uint64, bool) {
	tag := v.v.Prerelease()
	if !strings.HasPrefix(tag, betaPrefix) {
		return 0, false
	}
	seq, err := strconv.ParseUint(tag[len(betaPrefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return seq, true
}

// BaseString renders the base triple without any pre-release suffix.
func (v Version) BaseString() string {
	return fmt.Sprintf("%d.%d.%d", v.v.Major(), v.v.Minor(), v.v.Patch())
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.Original()
}

// SameBase reports whether two versions share a base triple.
func (v Version) SameBase(other Version) bool {
	return v.CompareBase(other) == 0
}

// CompareBase orders two versions by base triple only: major, then minor,
// then patch, compared as integers. Pre-release tags are ignored.
func (v Version) CompareBase(other Version) int {
	if c := compareUint(v.Major(), other.Major()); c != 0 {
		return c
	}
	if c := compareUint(v.Minor(), other.Minor()); c != 0 {
		return c
	}
	return compareUint(v.Patch(), other.Patch())
}

// Classify reports the severity of the change between two versions. The
// first differing base component wins; equal bases classify as no change
// even when the pre-release tags differ, since pre-release-only movement is
// tracked through the bundle fingerprint instead. The comparison is
// direction-agnostic.
func Classify(oldVersion Version, newVersion Version) types.ChangeSeverity {
	switch {
	case oldVersion.Major() != newVersion.Major():
		return types.SeverityMajor
	case oldVersion.Minor() != newVersion.Minor():
		return types.SeverityMinor
	case oldVersion.Patch() != newVersion.Patch():
		return types.SeverityPatch
	default:
		return types.SeverityNone
	}
}

func compareUint(a uint64, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
