package strategy

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ozplan/ozplan/internal/domain"
	"github.com/ozplan/ozplan/internal/intel"
)

// FreshnessWindow is how long an existing PENDING recommendation suppresses
// regeneration for its semantic key when forceRefresh is off.
const FreshnessWindow = 7 * 24 * time.Hour

// RecommendationStore is the injected persistence collaborator. The
// pipeline never performs storage inline so it stays independently
// testable; uniqueness of semantic key per user is the store's concern.
type RecommendationStore interface {
	SaveRecommendation(ctx context.Context, rec *domain.StrategyRecommendation) error
	FreshPendingKeys(ctx context.Context, userID string, since time.Time) (map[string]bool, error)
	ExpirePendingForUser(ctx context.Context, userID string) (int64, error)
	Accept(ctx context.Context, id int64, notes string) error
	Dismiss(ctx context.Context, id int64, reason string) error
}

// GenerateOptions configures one pipeline run.
type GenerateOptions struct {
	UserID       string
	ForceRefresh bool
}

// RunMetadata reports how a pipeline run went, including which analyzers
// failed; a failed analyzer never blocks the others.
type RunMetadata struct {
	AnalyzersRun        int             `json:"analyzers_run"`
	AnalyzersFailed     []string        `json:"analyzers_failed,omitempty"`
	FindingsBeforeDedup int             `json:"findings_before_dedup"`
	FindingsAfterDedup  int             `json:"findings_after_dedup"`
	SkippedFresh        int             `json:"skipped_fresh"`
	Duration            time.Duration   `json:"duration"`
	DataQuality         decimal.Decimal `json:"data_quality"`
}

// GenerateResult is the pipeline output: the persisted (or to-persist)
// recommendations plus execution metadata.
type GenerateResult struct {
	Recommendations []domain.StrategyRecommendation `json:"recommendations"`
	Metadata        RunMetadata                     `json:"metadata"`
}

// Pipeline orchestrates the analyzer suite.
type Pipeline struct {
	analyzers []Analyzer
	store     RecommendationStore
	log       *logrus.Logger
	now       func() time.Time
}

// NewPipeline builds a pipeline over the default analyzers. The store may
// be nil, in which case results are returned without persistence.
func NewPipeline(store RecommendationStore, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.New()
	}
	return &Pipeline{
		analyzers: DefaultAnalyzers(),
		store:     store,
		log:       log,
		now:       time.Now,
	}
}

// WithAnalyzers replaces the analyzer set; used by tests and callers that
// want a narrower suite.
func (p *Pipeline) WithAnalyzers(analyzers []Analyzer) *Pipeline {
	p.analyzers = analyzers
	return p
}

// GenerateStrategies runs every analyzer over the snapshot, deduplicates
// and ranks the findings, and persists them as PENDING recommendations.
// With ForceRefresh off, semantic keys that already have a fresh PENDING
// recommendation are skipped; with it on, existing PENDING rows are expired
// first and the full set regenerated.
func (p *Pipeline) GenerateStrategies(ctx context.Context, snapshot *domain.Snapshot, opts GenerateOptions) (*GenerateResult, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("strategy generation requires a snapshot")
	}
	start := p.now()
	metrics := intel.Compute(snapshot)

	// Fan out: one slot per analyzer so there is no shared accumulator.
	// Failures (errors or panics) are isolated per analyzer and reported
	// in the metadata rather than aborting the run.
	results := make([][]domain.StrategyFinding, len(p.analyzers))
	failures := make([]string, len(p.analyzers))

	g, gctx := errgroup.WithContext(ctx)
	for i, analyzer := range p.analyzers {
		i, analyzer := i, analyzer
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					failures[i] = analyzer.Name()
					p.log.WithFields(logrus.Fields{
						"analyzer": analyzer.Name(),
						"panic":    r,
					}).Error("analyzer panicked")
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			findings, err := analyzer.Analyze(snapshot, metrics)
			if err != nil {
				failures[i] = analyzer.Name()
				p.log.WithFields(logrus.Fields{
					"analyzer": analyzer.Name(),
					"error":    err,
				}).Warn("analyzer failed; continuing with partial results")
				return nil
			}
			results[i] = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metadata := RunMetadata{
		AnalyzersRun: len(p.analyzers),
		DataQuality:  metrics.DataQuality,
	}
	for _, name := range failures {
		if name != "" {
			metadata.AnalyzersFailed = append(metadata.AnalyzersFailed, name)
		}
	}

	// Flatten in registration order so creation order is deterministic.
	var flat []domain.StrategyFinding
	for _, findings := range results {
		for _, f := range findings {
			f.Clamp()
			f.Confidence = dampConfidence(f.Confidence, metrics.DataQuality)
			flat = append(flat, f)
		}
	}
	metadata.FindingsBeforeDedup = len(flat)

	deduped := dedupFindings(flat)
	rankFindings(deduped)
	metadata.FindingsAfterDedup = len(deduped)

	recommendations, skipped, err := p.persist(ctx, opts, deduped)
	if err != nil {
		return nil, err
	}
	metadata.SkippedFresh = skipped
	metadata.Duration = p.now().Sub(start)

	return &GenerateResult{Recommendations: recommendations, Metadata: metadata}, nil
}

// dampConfidence shades analyzer confidence by snapshot completeness: a
// sparse snapshot halves the weight of the quality term.
func dampConfidence(conf, quality decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromFloat(0.5).Add(decimal.NewFromFloat(0.5).Mul(quality))
	return conf.Mul(factor)
}

// dedupFindings keeps the highest-score finding per semantic key, breaking
// score ties by confidence and then by creation order.
func dedupFindings(findings []domain.StrategyFinding) []domain.StrategyFinding {
	best := make(map[string]int)
	var order []string
	for i := range findings {
		key := findings[i].SemanticKey()
		existing, ok := best[key]
		if !ok {
			best[key] = i
			order = append(order, key)
			continue
		}
		if findings[i].Score.GreaterThan(findings[existing].Score) ||
			(findings[i].Score.Equal(findings[existing].Score) &&
				findings[i].Confidence.GreaterThan(findings[existing].Confidence)) {
			best[key] = i
		}
	}
	deduped := make([]domain.StrategyFinding, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, findings[best[key]])
	}
	return deduped
}

// rankFindings sorts by score descending, confidence descending, stable on
// creation order.
func rankFindings(findings []domain.StrategyFinding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if !findings[i].Score.Equal(findings[j].Score) {
			return findings[i].Score.GreaterThan(findings[j].Score)
		}
		return findings[i].Confidence.GreaterThan(findings[j].Confidence)
	})
}

func (p *Pipeline) persist(ctx context.Context, opts GenerateOptions, findings []domain.StrategyFinding) ([]domain.StrategyRecommendation, int, error) {
	now := p.now()
	skipped := 0

	var freshKeys map[string]bool
	if p.store != nil {
		if opts.ForceRefresh {
			expired, err := p.store.ExpirePendingForUser(ctx, opts.UserID)
			if err != nil {
				return nil, 0, fmt.Errorf("expiring stale recommendations: %w", err)
			}
			if expired > 0 {
				p.log.WithFields(logrus.Fields{"user": opts.UserID, "expired": expired}).Info("superseded pending recommendations")
			}
		} else {
			var err error
			freshKeys, err = p.store.FreshPendingKeys(ctx, opts.UserID, now.Add(-FreshnessWindow))
			if err != nil {
				return nil, 0, fmt.Errorf("loading fresh recommendation keys: %w", err)
			}
		}
	}

	recommendations := make([]domain.StrategyRecommendation, 0, len(findings))
	for _, f := range findings {
		key := f.SemanticKey()
		if freshKeys[key] {
			skipped++
			continue
		}
		rec := domain.StrategyRecommendation{
			UserID:      opts.UserID,
			SemanticKey: key,
			Finding:     f,
			Status:      domain.RecommendationPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if p.store != nil {
			if err := p.store.SaveRecommendation(ctx, &rec); err != nil {
				return nil, 0, fmt.Errorf("saving recommendation %s: %w", key, err)
			}
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, skipped, nil
}

// Accept marks a recommendation accepted with optional user notes.
func (p *Pipeline) Accept(ctx context.Context, id int64, notes string) error {
	if p.store == nil {
		return fmt.Errorf("no recommendation store configured")
	}
	return p.store.Accept(ctx, id, notes)
}

// Dismiss marks a recommendation dismissed with an optional reason.
func (p *Pipeline) Dismiss(ctx context.Context, id int64, reason string) error {
	if p.store == nil {
		return fmt.Errorf("no recommendation store configured")
	}
	return p.store.Dismiss(ctx, id, reason)
}
