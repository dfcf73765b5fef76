package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"hydromap/internal/logger"
	"hydromap/internal/types"
)

// RemoteSource pulls records from another HydroMap-compatible API at
// {base}/api/{entity}. Server errors and transport failures are retried with
// exponential backoff; 4xx responses are not.
type RemoteSource struct {
	base       string
	client     *http.Client
	maxElapsed time.Duration
	log        *logger.Logger
}

func NewRemoteSource(base string, timeout time.Duration, log *logger.Logger) *RemoteSource {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	return &RemoteSource{
		base:       strings.TrimRight(base, "/"),
		client:     &http.Client{Timeout: timeout},
		maxElapsed: 20 * time.Second,
		log:        log.Component("dataset.remote"),
	}
}

func (s *RemoteSource) ListInfrastructure(ctx context.Context, opts ListOptions) ([]types.InfrastructureAsset, error) {
	var out []types.InfrastructureAsset
	if err := s.get(ctx, EntityInfrastructure, opts, &out); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func (s *RemoteSource) ListInvestments(ctx context.Context, opts ListOptions) ([]types.Investment, error) {
	var out []types.Investment
	if err := s.get(ctx, EntityInvestments, opts, &out); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func (s *RemoteSource) ListPerformance(ctx context.Context, opts ListOptions) ([]types.PlantPerformanceSample, error) {
	var out []types.PlantPerformanceSample
	if err := s.get(ctx, EntityPerformance, opts, &out); err != nil {
		return nil, err
	}
	return orEmpty(out), nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *RemoteSource) endpoint(entity string, opts ListOptions) string {
	q := url.Values{}
	if opts.SortBy != "" {
		q.Set("sort", opts.SortBy)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	u := s.base + "/api/" + entity
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *RemoteSource) get(ctx context.Context, entity string, opts ListOptions, dst any) error {
	endpoint := s.endpoint(entity, opts)
	log := s.log.WithField("endpoint", endpoint)

	var lastErr error
	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			log.WithField("attempt", attempt).WithError(err).Warn("fetch failed")
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = err
			return err
		}
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("%s: server error %d: %s", entity, resp.StatusCode, strings.TrimSpace(string(body)))
			log.WithField("attempt", attempt).WithField("status", resp.StatusCode).Warn("retrying after server error")
			return lastErr
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%s: unexpected status %d", entity, resp.StatusCode)
			return backoff.Permanent(lastErr)
		}
		if err := json.Unmarshal(body, dst); err != nil {
			lastErr = fmt.Errorf("%s: decode: %w", entity, err)
			return backoff.Permanent(lastErr)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = s.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if lastErr == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			lastErr = err
		}
		return fmt.Errorf("remote %s: %w", entity, lastErr)
	}
	log.WithField("attempts", attempt).Debug("fetched")
	return nil
}
