package forecast

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ozplan/ozplan/internal/domain"
)

// CompareScenarios runs the forecast once per scenario and returns the
// results keyed by scenario name. Each run is independent: the snapshot is
// read-only and every run allocates its own state, so the scenarios execute
// concurrently.
func (e *Engine) CompareScenarios(
	ctx context.Context,
	snapshot *domain.Snapshot,
	overrides *domain.AssumptionOverrides,
	horizon int,
	plan *domain.DebtPlanResult,
) (*domain.ScenarioComparison, error) {
	comparison := &domain.ScenarioComparison{
		Horizon: horizon,
		Results: make(map[domain.Scenario]*domain.ForecastResult, len(domain.AllScenarios)),
	}

	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for _, scenario := range domain.AllScenarios {
		scenario := scenario
		g.Go(func() error {
			result, err := e.GenerateForecast(snapshot, overrides, scenario, horizon, plan)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", scenario, err)
			}
			mu.Lock()
			comparison.Results[scenario] = result
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return comparison, nil
}
