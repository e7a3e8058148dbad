package ports

import "context"

type ChangelogPort interface {
	// FetchDocument retrieves the raw changelog text. Any transport or
	// auth failure surfaces as a single unavailable condition.
	FetchDocument(ctx context.Context) (string, error)
}
