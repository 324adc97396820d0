package clouds

import (
	"context"
)

// Fetcher abstracts the upstream cloud listing API.
type Fetcher interface {
	FetchClouds(ctx context.Context) (RawResponse, error)
}

// Cache is the contract the memoizing store must satisfy.
type Cache interface {
	GetOrCompute(ctx context.Context, key string, compute func(context.Context) ([]AvailableCloud, error)) ([]AvailableCloud, error)
}
