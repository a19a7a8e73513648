// Package output renders engine results for the terminal.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/strategy"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func pct(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatDebtPlan renders a debt plan result.
func FormatDebtPlan(result *domain.DebtPlanResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Debt Plan — %s strategy", strings.ToLower(string(result.Strategy)))))
	b.WriteString("\n\n")

	b.WriteString(headStyle.Render(fmt.Sprintf("%-12s %-22s %10s %14s %14s", "Loan", "Name", "Payoff", "Interest", "Ending")))
	b.WriteString("\n")
	for _, s := range result.Schedules {
		payoff := dimStyle.Render("open")
		if s.PaidOff {
			payoff = fmt.Sprintf("month %d", s.PayoffPeriod)
		}
		b.WriteString(fmt.Sprintf("%-12s %-22s %10s %14s %14s\n",
			s.LoanID, s.LoanName, payoff, money(s.TotalInterest), money(s.EndingBalance)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total interest paid:   %s\n", money(result.TotalInterestPaid)))
	b.WriteString(fmt.Sprintf("Minimum-only baseline: %s\n", money(result.BaselineInterestPaid)))
	b.WriteString(goodStyle.Render(fmt.Sprintf("Interest saved:        %s", money(result.InterestSaved))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Months to debt free:   %d\n", result.MonthsToDebtFree))
	if result.HorizonReached {
		b.WriteString(badStyle.Render("Simulation horizon reached before full payoff"))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatForecast renders one forecast run.
func FormatForecast(result *domain.ForecastResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Forecast — %s scenario", result.Scenario)))
	b.WriteString("\n\n")

	b.WriteString(headStyle.Render(fmt.Sprintf("%5s %16s %16s %16s %16s", "Year", "Net Worth", "Cash", "Equity", "Debt")))
	b.WriteString("\n")
	for _, p := range result.Projections {
		line := fmt.Sprintf("%5d %16s %16s %16s %16s", p.Year,
			money(p.NetWorth), money(p.CashBalance), money(p.TotalEquity), money(p.TotalDebt))
		if p.Retired {
			line = dimStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Final net worth:    %s\n", money(result.Summary.FinalNetWorth)))
	b.WriteString(fmt.Sprintf("Replacement ratio:  %s\n", pct(result.Summary.ReplacementRatio)))
	if result.Summary.ComfortableRetirement {
		b.WriteString(goodStyle.Render("Projection supports a comfortable retirement"))
	} else {
		b.WriteString(warnStyle.Render("Projection falls short of the comfortable-retirement target"))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatComparison renders the three-scenario comparison table.
func FormatComparison(comparison *domain.ScenarioComparison) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Scenario comparison — %d year horizon", comparison.Horizon)))
	b.WriteString("\n\n")
	b.WriteString(headStyle.Render(fmt.Sprintf("%-14s %18s %18s %12s %12s", "Scenario", "Final Net Worth", "Final Cash", "Replace %", "Comfortable")))
	b.WriteString("\n")
	for _, scenario := range domain.AllScenarios {
		result, ok := comparison.Results[scenario]
		if !ok {
			continue
		}
		comfortable := badStyle.Render("no")
		if result.Summary.ComfortableRetirement {
			comfortable = goodStyle.Render("yes")
		}
		b.WriteString(fmt.Sprintf("%-14s %18s %18s %12s %12s\n",
			scenario,
			money(result.Summary.FinalNetWorth),
			money(result.Summary.FinalCashBalance),
			pct(result.Summary.ReplacementRatio),
			comfortable))
	}
	return b.String()
}

// FormatRecommendations renders a pipeline run.
func FormatRecommendations(result *strategy.GenerateResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Strategy recommendations"))
	b.WriteString("\n\n")

	for i, rec := range result.Recommendations {
		f := rec.Finding
		severity := dimStyle.Render(string(f.Severity))
		switch f.Severity {
		case domain.SeverityUrgent:
			severity = badStyle.Render(string(f.Severity))
		case domain.SeverityWarning:
			severity = warnStyle.Render(string(f.Severity))
		}
		b.WriteString(fmt.Sprintf("%2d. [%s/%s] %s\n", i+1, f.Category, severity, headStyle.Render(f.Title)))
		b.WriteString(fmt.Sprintf("    %s\n", f.Summary))
		b.WriteString(dimStyle.Render(fmt.Sprintf("    score %s  confidence %s  benefit %s",
			f.Score.StringFixed(0), f.Confidence.StringFixed(2), money(f.ProjectedBenefit))))
		b.WriteString("\n")
		for _, step := range f.ActionSteps {
			b.WriteString(fmt.Sprintf("      - %s\n", step))
		}
	}

	meta := result.Metadata
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf(
		"%d analyzers, %d findings (%d after dedup), %d skipped as fresh, data quality %s, took %s",
		meta.AnalyzersRun, meta.FindingsBeforeDedup, meta.FindingsAfterDedup,
		meta.SkippedFresh, meta.DataQuality.StringFixed(2), meta.Duration)))
	b.WriteString("\n")
	if len(meta.AnalyzersFailed) > 0 {
		b.WriteString(badStyle.Render("failed analyzers: " + strings.Join(meta.AnalyzersFailed, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatStoredRecommendations renders recommendations loaded from the
// store, optionally with alternative approaches for the open ones.
func FormatStoredRecommendations(recs []domain.StrategyRecommendation, withAlternatives bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stored recommendations"))
	b.WriteString("\n\n")

	if len(recs) == 0 {
		b.WriteString(dimStyle.Render("none"))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range recs {
		status := dimStyle.Render(string(rec.Status))
		if rec.Open() {
			status = warnStyle.Render(string(rec.Status))
		}
		b.WriteString(fmt.Sprintf("#%d [%s] %s\n", rec.ID, status, headStyle.Render(rec.Finding.Title)))
		b.WriteString(fmt.Sprintf("    %s\n", rec.Finding.Summary))
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %s  score %s  created %s",
			rec.SemanticKey, rec.Finding.Score.StringFixed(0), rec.CreatedAt.Format("2006-01-02"))))
		b.WriteString("\n")
		if rec.Notes != "" {
			b.WriteString(fmt.Sprintf("    notes: %s\n", rec.Notes))
		}
		if rec.DismissReason != "" {
			b.WriteString(fmt.Sprintf("    dismissed: %s\n", rec.DismissReason))
		}
		if withAlternatives && rec.Open() {
			for _, alt := range strategy.Alternatives(&rec) {
				b.WriteString(fmt.Sprintf("      alt: %s\n", alt.Title))
				b.WriteString(dimStyle.Render(fmt.Sprintf("           %s %s", alt.Approach, alt.TradeOff)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// FormatTaxability renders one taxability classification.
func FormatTaxability(result domain.TaxabilityResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Taxability — " + result.Category))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Taxable amount:    %s\n", money(result.TaxableAmount)))
	b.WriteString(fmt.Sprintf("Exempt amount:     %s\n", money(result.ExemptAmount)))
	if result.FrankingCredits.GreaterThan(decimal.Zero) {
		b.WriteString(fmt.Sprintf("Franking credits:  %s\n", money(result.FrankingCredits)))
		b.WriteString(fmt.Sprintf("Grossed-up amount: %s\n", money(result.GrossedUpAmount)))
	}
	b.WriteString(dimStyle.Render(result.Explanation))
	b.WriteString("\n")
	return b.String()
}
