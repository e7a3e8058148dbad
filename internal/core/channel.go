package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundle-release/internal/types"
)

// SelectVersion picks the single version a channel should target for one
// service, given the published release and pre-release versions reported by
// the registry.
//
// The stable channel only ever considers release versions. The beta channel
// considers releases plus pre-releases whose base triple is not already
// covered by a release: a release always beats a pre-release sharing its
// base, while a higher base wins outright regardless of stability.
func SelectVersion(channel types.Channel, releases []Version, preReleases []Version) (Version, error) {
	if channel == types.ChannelStable {
		best, ok := maxRelease(releases)
		if !ok {
			return Version{}, noVersionFound(channel)
		}
		return best, nil
	}

	candidates := append([]Version(nil), releases...)
	for _, pre := range preReleases {
		if shadowedByRelease(pre, releases) {
			continue
		}
		candidates = append(candidates, pre)
	}
	best, ok := maxCandidate(candidates)
	if !ok {
		best, ok = maxRelease(releases)
	}
	if !ok {
		return Version{}, noVersionFound(channel)
	}
	return best, nil
}

// shadowedByRelease reports whether a release version already covers the
// pre-release's base triple.
func shadowedByRelease(pre Version, releases []Version) bool {
	for _, rel := range releases {
		if rel.SameBase(pre) {
			return true
		}
	}
	return false
}

func maxRelease(releases []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range releases {
		if !found || candidate.CompareBase(best) > 0 {
			best = candidate
			found = true
		}
	}
	return best, found
}

// maxCandidate orders mixed release and pre-release candidates: higher base
// wins; on an equal base a release beats a pre-release, and between two
// pre-releases the higher beta sequence wins (unstructured tags rank
// lowest).
func maxCandidate(candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, candidate := range candidates {
		if !found || beats(candidate, best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

func beats(a Version, b Version) bool {
	if c := a.CompareBase(b); c != 0 {
		return c > 0
	}
	if a.IsPreRelease() != b.IsPreRelease() {
		return !a.IsPreRelease()
	}
	seqA, _ := a.BetaSequence()
	seqB, _ := b.BetaSequence()
	return seqA > seqB
}

func noVersionFound(channel types.Channel) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no version found for %s channel", channel))
}
