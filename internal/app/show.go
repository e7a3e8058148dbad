package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"bundle-release/internal/core"
)

// Show reads a channel's manifest and bundle without mutating anything.
func (s Service) Show(ctx context.Context, req ShowRequest) (ShowResult, error) {
	if strings.TrimSpace(req.BundlePath) == "" {
		return ShowResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle file path is required")
	}
	if strings.TrimSpace(req.ManifestPath) == "" {
		return ShowResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest file path is required")
	}
	bundle, err := s.Bundles.Read(req.BundlePath)
	if err != nil {
		return ShowResult{}, err
	}
	manifest, err := s.Manifests.Read(req.ManifestPath)
	if err != nil {
		return ShowResult{}, err
	}
	pins := make([]ServicePin, 0, len(bundle.Services))
	for _, svc := range bundle.Services {
		pins = append(pins, ServicePin{Name: svc.Name, Image: svc.Image.String()})
	}
	return ShowResult{
		Version:      manifest.Version,
		ReleaseNotes: manifest.ReleaseNotes,
		Fingerprint:  core.Fingerprint(bundle),
		Services:     pins,
	}, nil
}

// Fingerprint computes the content digest of a bundle file on disk.
func (s Service) Fingerprint(ctx context.Context, req FingerprintRequest) (FingerprintResult, error) {
	if strings.TrimSpace(req.BundlePath) == "" {
		return FingerprintResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("bundle file path is required")
	}
	bundle, err := s.Bundles.Read(req.BundlePath)
	if err != nil {
		return FingerprintResult{}, err
	}
	return FingerprintResult{
		Fingerprint: core.Fingerprint(bundle),
		Services:    len(bundle.Services),
	}, nil
}
