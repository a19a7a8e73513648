// Package strategy runs the analyzer suite over a financial snapshot and
// turns findings into ranked, persisted recommendations.
package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

// Analyzer inspects a read-only snapshot and emits zero or more scored
// findings. Implementations must not touch the network or a database and
// must be safe to run concurrently with the other analyzers.
type Analyzer interface {
	Name() string
	Analyze(snapshot *domain.Snapshot, metrics *intel.PortfolioMetrics) ([]domain.StrategyFinding, error)
}

// DefaultAnalyzers returns the full analyzer suite in registration order.
// Registration order is the creation-order tie-break for ranking, so it is
// fixed.
func DefaultAnalyzers() []Analyzer {
	return []Analyzer{
		NewCashflowAnalyzer(),
		NewDebtAnalyzer(),
		NewInvestmentAnalyzer(),
		NewPropertyAnalyzer(),
		NewRiskAnalyzer(),
		NewLiquidityAnalyzer(),
		NewTaxAnalyzer(),
		NewTimeHorizonAnalyzer(),
	}
}

var decimalZero = decimal.Zero

func score(v float64) decimal.Decimal      { return decimal.NewFromFloat(v) }
func confidence(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }
