package app

import "bundle-release/internal/types"

type UpdateRequest struct {
	Channel          string
	BundlePath       string
	ManifestPath     string
	RegistryEndpoint string
	RegistryUser     string
	RegistryAPIKey   string
	ChangelogURL     string
	ChangelogToken   string
	Interactive      bool
	DryRun           bool
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type ServiceChange struct {
	Name       string
	OldImage   string
	NewImage   string
	OldVersion string
	NewVersion string
	Severity   types.ChangeSeverity
}

type UpdateResult struct {
	Channel         types.Channel
	PreviousVersion string
	NextVersion     string
	Changes         []ServiceChange
	ReleaseNotes    string
	DryRun          bool
}

type ShowRequest struct {
	BundlePath   string
	ManifestPath string
}

type ServicePin struct {
	Name  string
	Image string
}

type ShowResult struct {
	Version      string
	ReleaseNotes string
	Fingerprint  string
	Services     []ServicePin
}

type FingerprintRequest struct {
	BundlePath string
}

type FingerprintResult struct {
	Fingerprint string
	Services    int
}
