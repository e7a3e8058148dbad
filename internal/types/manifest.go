package types

// AppManifest is the aggregate release manifest for one channel: a single
// application version plus the notes published alongside it.
type AppManifest struct {
	Version      string `yaml:"version"`
	ReleaseNotes string `yaml:"release_notes"`
}
