// Package dataset supplies record collections to the aggregator. Every
// source implements Source; FetchSnapshot pulls all three collections at
// once and hands back either a complete snapshot or an error.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"hydromap/internal/types"
)

var ErrUnknownEntity = errors.New("unknown entity")

const (
	EntityInfrastructure = "infrastructure"
	EntityInvestments    = "investments"
	EntityPerformance    = "performance"
)

// ListOptions are hints. Sources may ignore them; callers that need an order
// sort for themselves.
type ListOptions struct {
	// SortBy is "createdDate" or "timestamp", prefixed with "-" for descending.
	SortBy string
	Limit  int
}

type Source interface {
	ListInfrastructure(ctx context.Context, opts ListOptions) ([]types.InfrastructureAsset, error)
	ListInvestments(ctx context.Context, opts ListOptions) ([]types.Investment, error)
	ListPerformance(ctx context.Context, opts ListOptions) ([]types.PlantPerformanceSample, error)
}

// FetchSnapshot loads the three collections concurrently. Any failure fails
// the whole snapshot so callers never render half-loaded aggregates.
func FetchSnapshot(ctx context.Context, src Source) (types.Snapshot, error) {
	var snap types.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := src.ListInfrastructure(gctx, ListOptions{})
		if err != nil {
			return fmt.Errorf("list %s: %w", EntityInfrastructure, err)
		}
		snap.Infrastructure = list
		return nil
	})
	g.Go(func() error {
		list, err := src.ListInvestments(gctx, ListOptions{})
		if err != nil {
			return fmt.Errorf("list %s: %w", EntityInvestments, err)
		}
		snap.Investments = list
		return nil
	})
	g.Go(func() error {
		list, err := src.ListPerformance(gctx, ListOptions{})
		if err != nil {
			return fmt.Errorf("list %s: %w", EntityPerformance, err)
		}
		snap.Performance = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return types.Snapshot{}, err
	}

	if snap.Infrastructure == nil {
		snap.Infrastructure = []types.InfrastructureAsset{}
	}
	if snap.Investments == nil {
		snap.Investments = []types.Investment{}
	}
	if snap.Performance == nil {
		snap.Performance = []types.PlantPerformanceSample{}
	}
	snap.FetchedAt = time.Now().UTC()
	return snap, nil
}

// ParseListOptions reads the advisory "sort" and "limit" query values.
func ParseListOptions(sortBy, limit string) ListOptions {
	opts := ListOptions{SortBy: strings.TrimSpace(sortBy)}
	var n int
	if _, err := fmt.Sscanf(limit, "%d", &n); err == nil && n > 0 {
		opts.Limit = n
	}
	return opts
}

// apply sorts a copy of items by the time returned from at and cuts it to
// opts.Limit. Unknown sort keys leave the order alone.
func apply[T any](items []T, opts ListOptions, field string, at func(T) time.Time) []T {
	out := make([]T, len(items))
	copy(out, items)

	key, desc := opts.SortBy, false
	if strings.HasPrefix(key, "-") {
		key, desc = key[1:], true
	}
	if key == field {
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return at(out[i]).After(at(out[j]))
			}
			return at(out[i]).Before(at(out[j]))
		})
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out
}

func applyAssets(items []types.InfrastructureAsset, opts ListOptions) []types.InfrastructureAsset {
	return apply(items, opts, "createdDate", func(a types.InfrastructureAsset) time.Time { return a.CreatedDate })
}

func applyInvestments(items []types.Investment, opts ListOptions) []types.Investment {
	return apply(items, opts, "createdDate", func(i types.Investment) time.Time { return i.CreatedDate })
}

func applySamples(items []types.PlantPerformanceSample, opts ListOptions) []types.PlantPerformanceSample {
	return apply(items, opts, "timestamp", func(s types.PlantPerformanceSample) time.Time { return s.Timestamp })
}
