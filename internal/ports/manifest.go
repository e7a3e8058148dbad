package ports

import "bundle-release/internal/types"

type ManifestPort interface {
	Read(path string) (types.AppManifest, error)
	WriteAtomic(path string, manifest types.AppManifest) error
}
