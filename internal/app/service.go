package app

import (
	"bundle-release/internal/adapters"
	"bundle-release/internal/ports"
)

// Service wires the core algorithms to their external collaborators. Ports
// left nil are constructed per request from the request's connection
// settings; tests inject fakes instead.
type Service struct {
	Registry  ports.RegistryPort
	Changelog ports.ChangelogPort
	Bundles   ports.BundlePort
	Manifests ports.ManifestPort
	Editor    ports.EditorPort
}

func NewService() Service {
	return Service{
		Bundles:   adapters.NewBundleFileAdapter(),
		Manifests: adapters.NewManifestFileAdapter(),
		Editor:    adapters.NewNotesEditorAdapter(),
	}
}

func (s Service) registry(req UpdateRequest) ports.RegistryPort {
	if s.Registry != nil {
		return s.Registry
	}
	return adapters.NewRegistryHTTPAdapter(
		req.RegistryEndpoint,
		req.RegistryUser,
		req.RegistryAPIKey,
		req.HTTPTimeoutSec,
		req.HTTPRetries,
		req.HTTPRetryDelayMs,
	)
}

func (s Service) changelog(req UpdateRequest) ports.ChangelogPort {
	if s.Changelog != nil {
		return s.Changelog
	}
	return adapters.NewChangelogHTTPAdapter(req.ChangelogURL, req.ChangelogToken, req.HTTPTimeoutSec)
}
