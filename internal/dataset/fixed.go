package dataset

import (
	"context"

	"hydromap/internal/types"
)

// FixedSource serves the collections it was built with. Err, when set, is
// returned by every call.
type FixedSource struct {
	Snapshot types.Snapshot
	Err      error
}

func (f *FixedSource) check(ctx context.Context) error {
	if f.Err != nil {
		return f.Err
	}
	return ctx.Err()
}

func (f *FixedSource) ListInfrastructure(ctx context.Context, opts ListOptions) ([]types.InfrastructureAsset, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return applyAssets(f.Snapshot.Infrastructure, opts), nil
}

func (f *FixedSource) ListInvestments(ctx context.Context, opts ListOptions) ([]types.Investment, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return applyInvestments(f.Snapshot.Investments, opts), nil
}

func (f *FixedSource) ListPerformance(ctx context.Context, opts ListOptions) ([]types.PlantPerformanceSample, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return applySamples(f.Snapshot.Performance, opts), nil
}
