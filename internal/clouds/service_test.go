package clouds_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/aiven-clouds-proxy/internal/clouds"
	"github.com/i474232898/aiven-clouds-proxy/internal/store"
)

type fakeFetcher struct {
	raw   clouds.RawResponse
	err   error
	calls int
}

func (f *fakeFetcher) FetchClouds(context.Context) (clouds.RawResponse, error) {
	f.calls++
	return f.raw, f.err
}

func newService(f clouds.Fetcher, mock *clock.Mock) *clouds.Service {
	cache := store.New[[]clouds.AvailableCloud](1024, 600*time.Second, store.WithClock(mock))
	return clouds.NewService(cache, f)
}

func TestGetAllCloudsMemoizesForTTL(t *testing.T) {
	mock := clock.NewMock()
	f := &fakeFetcher{raw: clouds.RawResponse{
		"clouds": []any{map[string]any{"cloud_name": "aws-eu-west-1"}},
	}}
	svc := newService(f, mock)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		list, err := svc.GetAllClouds(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	require.Equal(t, 1, f.calls)

	mock.Add(599 * time.Second)
	_, err := svc.GetAllClouds(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, f.calls)

	mock.Add(time.Second)
	_, err = svc.GetAllClouds(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, f.calls)
}

func TestGetAllCloudsEmptyUpstream(t *testing.T) {
	f := &fakeFetcher{raw: clouds.RawResponse{}}
	svc := newService(f, clock.NewMock())

	list, err := svc.GetAllClouds(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestGetAllCloudsErrorIsNotCached(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	svc := newService(f, clock.NewMock())
	ctx := context.Background()

	_, err := svc.GetAllClouds(ctx)
	require.ErrorIs(t, err, f.err)

	f.err = nil
	f.raw = clouds.RawResponse{"clouds": []any{map[string]any{}}}
	list, err := svc.GetAllClouds(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 2, f.calls)
}
