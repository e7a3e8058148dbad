package ports

import "bundle-release/internal/types"

type BundlePort interface {
	Read(path string) (types.Bundle, error)
	// WriteAtomic replaces the bundle file in one step so a concurrent
	// reader never observes a partial write.
	WriteAtomic(path string, bundle types.Bundle) error
}
