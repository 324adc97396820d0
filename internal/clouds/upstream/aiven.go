package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/sony/gobreaker"

	"github.com/i474232898/aiven-clouds-proxy/internal/clouds"
	"github.com/i474232898/aiven-clouds-proxy/internal/metrics"
)

// DefaultURL is the public Aiven cloud listing endpoint.
const DefaultURL = "https://api.aiven.io/v1/clouds"

// AivenClient implements the clouds.Fetcher interface for the Aiven API.
type AivenClient struct {
	name    string
	url     string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAivenClient(client *http.Client, url string, backoff BackoffConfig) *AivenClient {
	if url == "" {
		url = DefaultURL
	}

	c := &AivenClient{
		name: "aiven",
		url:  url,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
	}
	c.circuit = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:          c.Name(),
		MaxRequests:   5,
		Interval:      1 * time.Minute,
		Timeout:       2 * time.Minute,
		OnStateChange: onBreakerStateChange,
	})
	return c
}

// Name labels the client's breaker, logs and metrics.
func (c *AivenClient) Name() string {
	return c.name
}

// FetchClouds issues an unauthenticated GET for the cloud listing. A 200 response
// is decoded and returned as is. Any other status, or a body that is not a JSON
// object, is reported as an empty response rather than an error; only transport
// failures and an open circuit are returned as errors.
func (c *AivenClient) FetchClouds(ctx context.Context) (clouds.RawResponse, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	logger := log.WithFields(log.Fields{"upstream": c.Name(), "url": c.url})

	if err != nil {
		var statusErr *StatusError
		switch {
		case errors.As(err, &statusErr):
			metrics.UpstreamRequests.WithLabelValues("bad_status").Inc()
			logger.WithField("status", statusErr.Code).Warn("upstream: non-success status, treating as empty")
			return clouds.RawResponse{}, nil
		case errors.Is(err, ErrCircuitOpen):
			metrics.UpstreamRequests.WithLabelValues("circuit_open").Inc()
		default:
			metrics.UpstreamRequests.WithLabelValues("error").Inc()
		}
		logger.WithError(err).Error("upstream: request failed")
		return nil, err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("bad_status").Inc()
		logger.WithField("status", resp.StatusCode).Warn("upstream: non-success status, treating as empty")
		return clouds.RawResponse{}, nil
	}

	// Numbers are kept as json.Number so they are passed through verbatim.
	var payload clouds.RawResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		metrics.UpstreamRequests.WithLabelValues("bad_body").Inc()
		logger.WithError(err).Warn("upstream: undecodable body, treating as empty")
		return clouds.RawResponse{}, nil
	}

	metrics.UpstreamRequests.WithLabelValues("success").Inc()
	return payload, nil
}

func onBreakerStateChange(name string, from, to gobreaker.State) {
	var v float64
	switch to {
	case gobreaker.StateOpen:
		v = 1
	case gobreaker.StateHalfOpen:
		v = 2
	}
	metrics.CircuitBreakerState.WithLabelValues(name).Set(v)
	log.WithFields(log.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("upstream: circuit breaker state changed")
}
