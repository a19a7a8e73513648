// Package config loads and validates the YAML plan files consumed by the
// CLI: a financial snapshot plus optional planner and forecast settings.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ozplan/ozplan/internal/domain"
)

// ForecastOptions selects the scenario and horizon for a forecast run.
type ForecastOptions struct {
	Scenario  domain.Scenario             `yaml:"scenario" json:"scenario"`
	Horizon   int                         `yaml:"horizon" json:"horizon"`
	Overrides *domain.AssumptionOverrides `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// PlanInput is the full contents of a plan file.
type PlanInput struct {
	Snapshot domain.Snapshot         `yaml:"snapshot" json:"snapshot"`
	Planner  *domain.PlannerSettings `yaml:"planner,omitempty" json:"planner,omitempty"`
	Forecast *ForecastOptions        `yaml:"forecast,omitempty" json:"forecast,omitempty"`
}

// InputParser handles parsing of plan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a plan file.
func (ip *InputParser) LoadFromFile(filename string) (*PlanInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input PlanInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&input); err != nil {
		return nil, fmt.Errorf("plan file validation failed: %w", err)
	}
	return &input, nil
}

// Validate checks the plan file for caller mistakes before any engine runs.
func (ip *InputParser) Validate(input *PlanInput) error {
	if err := ip.validateSnapshot(&input.Snapshot); err != nil {
		return fmt.Errorf("snapshot validation failed: %w", err)
	}
	if input.Planner != nil {
		if err := ip.validatePlanner(input.Planner, input.Snapshot.Loans); err != nil {
			return fmt.Errorf("planner validation failed: %w", err)
		}
	}
	if input.Forecast != nil {
		if err := ip.validateForecast(input.Forecast); err != nil {
			return fmt.Errorf("forecast validation failed: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateSnapshot(s *domain.Snapshot) error {
	if s.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	for i, loan := range s.Loans {
		if loan.ID == "" {
			return fmt.Errorf("loan %d: id is required", i)
		}
		if loan.Principal.LessThan(decimal.Zero) {
			return fmt.Errorf("loan %d (%s): principal cannot be negative", i, loan.ID)
		}
		// Rates arrive as decimal fractions; a value of 6.25 is almost
		// certainly a percentage entered by mistake.
		if loan.AnnualRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("loan %d (%s): annual rate %s looks like a percentage, expected a fraction", i, loan.ID, loan.AnnualRate)
		}
		if err := domain.ValidateFrequency(loan.RepaymentFrequency); err != nil {
			return fmt.Errorf("loan %d (%s): %w", i, loan.ID, err)
		}
	}
	for i, inc := range s.Income {
		if err := domain.ValidateFrequency(inc.Frequency); err != nil {
			return fmt.Errorf("income %d (%s): %w", i, inc.ID, err)
		}
	}
	for i, exp := range s.Expenses {
		if err := domain.ValidateFrequency(exp.Frequency); err != nil {
			return fmt.Errorf("expense %d (%s): %w", i, exp.ID, err)
		}
	}
	return nil
}

func (ip *InputParser) validatePlanner(settings *domain.PlannerSettings, loans []domain.LoanInput) error {
	if settings.Strategy == "" {
		return fmt.Errorf("strategy is required")
	}
	switch settings.Strategy {
	case domain.AllocationAvalanche, domain.AllocationSnowball:
	case domain.AllocationCustom:
		if len(settings.CustomOrder) != len(loans) {
			return fmt.Errorf("custom_order must list every loan exactly once")
		}
	default:
		return fmt.Errorf("unknown strategy %q", string(settings.Strategy))
	}
	if settings.Surplus.LessThan(decimal.Zero) {
		return fmt.Errorf("surplus cannot be negative")
	}
	if err := domain.ValidateFrequency(settings.SurplusFrequency); err != nil {
		return fmt.Errorf("surplus_frequency: %w", err)
	}
	return nil
}

func (ip *InputParser) validateForecast(opts *ForecastOptions) error {
	if !opts.Scenario.Valid() {
		return fmt.Errorf("scenario must be one of CONSERVATIVE, DEFAULT, AGGRESSIVE; got %q", string(opts.Scenario))
	}
	if !domain.ValidHorizon(opts.Horizon) {
		return fmt.Errorf("horizon must be one of %v; got %d", domain.ValidHorizons, opts.Horizon)
	}
	return nil
}
