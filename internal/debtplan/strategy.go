package debtplan

import (
	"fmt"
	"sort"

	"github.com/ozplan/ozplan/internal/domain"
)

// AllocationStrategy decides which open loans receive surplus first.
// Order must be deterministic: ties on the primary sort key fall back to
// loan id ascending so identical inputs always produce identical plans.
type AllocationStrategy interface {
	Name() string
	Order(open []*loanState) []*loanState
}

// AvalancheStrategy directs surplus at the highest interest rate first.
type AvalancheStrategy struct{}

func NewAvalancheStrategy() *AvalancheStrategy { return &AvalancheStrategy{} }

func (s *AvalancheStrategy) Name() string { return "avalanche" }

func (s *AvalancheStrategy) Order(open []*loanState) []*loanState {
	ordered := append([]*loanState(nil), open...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].input.AnnualRate.Equal(ordered[j].input.AnnualRate) {
			return ordered[i].input.AnnualRate.GreaterThan(ordered[j].input.AnnualRate)
		}
		return ordered[i].input.ID < ordered[j].input.ID
	})
	return ordered
}

// SnowballStrategy directs surplus at the smallest balance first.
type SnowballStrategy struct{}

func NewSnowballStrategy() *SnowballStrategy { return &SnowballStrategy{} }

func (s *SnowballStrategy) Name() string { return "snowball" }

func (s *SnowballStrategy) Order(open []*loanState) []*loanState {
	ordered := append([]*loanState(nil), open...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].balance.Equal(ordered[j].balance) {
			return ordered[i].balance.LessThan(ordered[j].balance)
		}
		return ordered[i].input.ID < ordered[j].input.ID
	})
	return ordered
}

// CustomStrategy applies a caller-supplied loan ordering.
type CustomStrategy struct {
	rank map[string]int
}

func NewCustomStrategy(order []string) *CustomStrategy {
	rank := make(map[string]int, len(order))
	for i, id := range order {
		rank[id] = i
	}
	return &CustomStrategy{rank: rank}
}

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Order(open []*loanState) []*loanState {
	ordered := append([]*loanState(nil), open...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return s.rank[ordered[i].input.ID] < s.rank[ordered[j].input.ID]
	})
	return ordered
}

// CreateStrategy builds the strategy named by the settings. A custom
// ordering must be a permutation of the supplied loan ids; anything else is
// a configuration error.
func CreateStrategy(settings domain.PlannerSettings, loans []domain.LoanInput) (AllocationStrategy, error) {
	switch settings.Strategy {
	case domain.AllocationAvalanche:
		return NewAvalancheStrategy(), nil
	case domain.AllocationSnowball:
		return NewSnowballStrategy(), nil
	case domain.AllocationCustom:
		if err := validateCustomOrder(settings.CustomOrder, loans); err != nil {
			return nil, err
		}
		return NewCustomStrategy(settings.CustomOrder), nil
	default:
		return nil, fmt.Errorf("unknown allocation strategy %q", string(settings.Strategy))
	}
}

func validateCustomOrder(order []string, loans []domain.LoanInput) error {
	if len(order) != len(loans) {
		return fmt.Errorf("custom order has %d entries for %d loans", len(order), len(loans))
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if seen[id] {
			return fmt.Errorf("custom order repeats loan id %q", id)
		}
		seen[id] = true
	}
	for _, loan := range loans {
		if !seen[loan.ID] {
			return fmt.Errorf("custom order is missing loan id %q", loan.ID)
		}
	}
	return nil
}
