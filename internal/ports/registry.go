package ports

import (
	"context"

	"bundle-release/internal/types"
)

type RegistryPort interface {
	// ListVersions returns the published version tags for one service,
	// split into release and pre-release lineages.
	ListVersions(ctx context.Context, service string) (types.ServiceVersions, error)
	// ResolveDigest resolves an image reference to its content digest.
	ResolveDigest(ctx context.Context, image types.ImageRef) (string, error)
}
