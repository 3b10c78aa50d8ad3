package interfaces

import "context"

// Source is one way of discovering subdomains of a domain.
type Source interface {
	Name() string
	Enumerate(ctx context.Context, domain string) ([]string, error)
}

// Enumerator combines sources into a single sorted, deduplicated list.
type Enumerator interface {
	Enumerate(ctx context.Context, domain string) ([]string, error)
}
