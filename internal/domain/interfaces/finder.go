package interfaces

import (
	"context"

	domaintypes "finder/internal/domain/types"
)

// SubdomainFinder is the remote collaborator behind POST /find.
type SubdomainFinder interface {
	Find(ctx context.Context, domain string) ([]string, error)
}

// RecordClient reads what the finder service has already stored.
type RecordClient interface {
	Lookup(ctx context.Context, domain string) (domaintypes.Record, error)
	History(ctx context.Context) ([]domaintypes.Record, error)
}
