package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"bundle-release/internal/ports"
	"bundle-release/internal/types"
)

// ManifestFileAdapter reads and writes the per-channel application
// manifest (version plus release notes) with the same atomic-replace
// discipline as the bundle file.
type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) Read(path string) (types.AppManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.AppManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	var manifest types.AppManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return types.AppManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid manifest format").
			WithCause(err)
	}
	if strings.TrimSpace(manifest.Version) == "" {
		return types.AppManifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest has no version")
	}
	return manifest, nil
}

func (a ManifestFileAdapter) WriteAtomic(path string, manifest types.AppManifest) error {
	if strings.TrimSpace(manifest.Version) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("refusing to write a manifest without a version")
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to serialize manifest").
			WithCause(err)
	}
	return writeFileAtomic(path, data)
}

var _ ports.ManifestPort = ManifestFileAdapter{}
