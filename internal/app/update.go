package app

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"bundle-release/internal/core"
	"bundle-release/internal/types"
)

// Update resolves the target version for every service of a channel's
// bundle, decides the next aggregate manifest version, and rewrites both
// files atomically. A run where nothing moved returns the no-change
// sentinel and leaves both files untouched.
func (s Service) Update(ctx context.Context, req UpdateRequest) (UpdateResult, error) {
	channel, err := validateUpdateRequest(ctx, req)
	if err != nil {
		return UpdateResult{}, err
	}

	bundle, err := s.Bundles.Read(req.BundlePath)
	if err != nil {
		return UpdateResult{}, err
	}
	manifest, err := s.Manifests.Read(req.ManifestPath)
	if err != nil {
		return UpdateResult{}, err
	}
	current, err := core.ParseVersion(manifest.Version)
	if err != nil {
		return UpdateResult{}, err
	}

	// All per-service lookups run sequentially and must succeed before
	// anything is fingerprinted or written: the bump decision needs a
	// complete snapshot.
	registry := s.registry(req)
	next := bundle
	severities := map[string]types.ChangeSeverity{}
	var changes []ServiceChange
	for _, svc := range bundle.Services {
		currentVersion, err := core.ParseVersion(svc.Image.Tag)
		if err != nil {
			return UpdateResult{}, err
		}
		versions, err := registry.ListVersions(ctx, svc.Name)
		if err != nil {
			return UpdateResult{}, err
		}
		releases, err := parseVersions(versions.ReleaseTags)
		if err != nil {
			return UpdateResult{}, err
		}
		preReleases, err := parseVersions(versions.PreReleaseTags)
		if err != nil {
			return UpdateResult{}, err
		}
		target, err := core.SelectVersion(channel, releases, preReleases)
		if err != nil {
			return UpdateResult{}, errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg(fmt.Sprintf("no version found for service %s on %s channel", svc.Name, channel)).
				WithCause(err)
		}
		ref := svc.Image.WithTag(target.String())
		digest, err := registry.ResolveDigest(ctx, ref)
		if err != nil {
			return UpdateResult{}, err
		}
		ref.Digest = digest
		next = next.WithImage(svc.Name, ref)

		severity := core.Classify(currentVersion, target)
		severities[svc.Name] = severity
		log.Debug().
			Str("service", svc.Name).
			Str("current", currentVersion.String()).
			Str("target", target.String()).
			Str("severity", severity.String()).
			Msg("service resolved")
		if ref.String() != svc.Image.String() {
			changes = append(changes, ServiceChange{
				Name:       svc.Name,
				OldImage:   svc.Image.String(),
				NewImage:   ref.String(),
				OldVersion: currentVersion.String(),
				NewVersion: target.String(),
				Severity:   severity,
			})
		}
	}

	before := core.Fingerprint(bundle)
	after := core.Fingerprint(next)
	highest := core.HighestSeverity(severities)
	nextVersion, err := core.NextVersion(current, channel, highest, before != after)
	if err != nil {
		if core.IsNoChange(err) {
			log.Info().
				Str("channel", string(channel)).
				Str("version", current.String()).
				Msg("bundle is up to date")
		}
		return UpdateResult{}, err
	}

	notes := s.releaseNotes(ctx, req, channel, nextVersion)

	if !req.DryRun {
		// Bundle first, manifest second, always in this order: a crash
		// between the two leaves at most one file updated.
		if err := s.Bundles.WriteAtomic(req.BundlePath, next); err != nil {
			return UpdateResult{}, err
		}
		if err := s.Manifests.WriteAtomic(req.ManifestPath, types.AppManifest{
			Version:      nextVersion.String(),
			ReleaseNotes: notes,
		}); err != nil {
			return UpdateResult{}, err
		}
	}

	log.Info().
		Str("channel", string(channel)).
		Str("previous", current.String()).
		Str("next", nextVersion.String()).
		Int("services_changed", len(changes)).
		Bool("dry_run", req.DryRun).
		Msg("bundle updated")

	return UpdateResult{
		Channel:         channel,
		PreviousVersion: current.String(),
		NextVersion:     nextVersion.String(),
		Changes:         changes,
		ReleaseNotes:    notes,
		DryRun:          req.DryRun,
	}, nil
}

// releaseNotes assembles the notes block for the next version. Changelog
// extraction only applies to the stable channel; every failure along the
// way degrades to the synthesized default rather than aborting the run.
func (s Service) releaseNotes(ctx context.Context, req UpdateRequest, channel types.Channel, next core.Version) string {
	fallback := core.DefaultNotes(next)
	notes := fallback
	if channel == types.ChannelStable {
		document, err := s.changelog(req).FetchDocument(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("changelog unavailable, using default notes")
		} else if extracted, ok := core.ExtractNotes(document, next); ok {
			notes = extracted
		}
		if req.Interactive && s.Editor != nil {
			edited, err := s.Editor.Edit(notes)
			if err != nil {
				log.Warn().Err(err).Msg("notes editor failed, keeping unedited notes")
			} else {
				notes = edited
			}
		}
	}
	cleaned := core.CleanNotes(notes)
	if strings.TrimSpace(cleaned) == "" {
		return fallback
	}
	return cleaned
}

func validateUpdateRequest(ctx context.Context, req UpdateRequest) (types.Channel, error) {
	assert.NotEmpty(ctx, req.Channel, "channel must be set")
	channel, ok := types.ParseChannel(req.Channel)
	if !ok {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("channel must be stable or beta")
	}
	if strings.TrimSpace(req.BundlePath) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle file path is required")
	}
	if strings.TrimSpace(req.ManifestPath) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest file path is required")
	}
	return channel, nil
}

func parseVersions(tags []string) ([]core.Version, error) {
	versions := make([]core.Version, 0, len(tags))
	for _, tag := range tags {
		parsed, err := core.ParseVersion(tag)
		if err != nil {
			return nil, err
		}
		versions = append(versions, parsed)
	}
	return versions, nil
}
