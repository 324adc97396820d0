package clouds

import (
	"context"
	"fmt"

	"github.com/apex/log"
)

// cacheKey is the single key under which the cloud list is memoized; the
// listing takes no parameters.
const cacheKey = "clouds"

// Service serves the normalized cloud list, fetching from upstream only when
// the cached copy is missing or stale.
type Service struct {
	cache   Cache
	fetcher Fetcher
}

// NewService creates a new Service.
func NewService(cache Cache, fetcher Fetcher) *Service {
	return &Service{
		cache:   cache,
		fetcher: fetcher,
	}
}

// GetAllClouds returns the cached cloud list, refreshing it from upstream on a miss.
// An upstream that answers with a non-success status yields an empty list;
// transport failures are returned as errors and are not cached.
func (s *Service) GetAllClouds(ctx context.Context) ([]AvailableCloud, error) {
	return s.cache.GetOrCompute(ctx, cacheKey, s.load)
}

func (s *Service) load(ctx context.Context) ([]AvailableCloud, error) {
	raw, err := s.fetcher.FetchClouds(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch clouds: %w", err)
	}

	list := BuildCloudList(raw)
	log.WithField("count", len(list)).Debug("clouds: refreshed cloud list")
	return list, nil
}
