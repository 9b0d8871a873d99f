package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Ruthemir95/nutritrack-sub001/internal/domain"
)

// defaultEnrichConcurrency bounds the in-flight nutrition lookups per run.
const defaultEnrichConcurrency = 4

// ImportServiceConfig holds configuration for the import orchestrator.
type ImportServiceConfig struct {
	EnrichConcurrency int
}

// ImportService runs the CSV-to-meal pipeline: parse, validate and enrich
// each row, aggregate into drafts, persist draft-by-draft. Everything below
// a total parse failure degrades to partial success reported in the summary.
type ImportService struct {
	store       domain.MealStore
	validator   *RowValidator
	concurrency int
	now         func() time.Time
}

// NewImportService creates the orchestrator with its collaborators. gateway
// is consulted once per row; store receives one create per draft.
func NewImportService(store domain.MealStore, gateway domain.NutritionGateway, config ImportServiceConfig) *ImportService {
	concurrency := config.EnrichConcurrency
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}

	return &ImportService{
		store:       store,
		validator:   NewRowValidator(gateway),
		concurrency: concurrency,
		now:         time.Now,
	}
}

// ImportCSV runs a full import over raw meal-plan file bytes. A parse
// failure is fatal and returned as an error with no summary; every later
// failure is captured in the returned summary instead.
func (s *ImportService) ImportCSV(ctx context.Context, ownerID string, data []byte) (*domain.ImportSummary, error) {
	log.Printf("[import] phase=%s owner=%s bytes=%d", domain.PhaseParsing, ownerID, len(data))

	rows, err := ParseMealPlanCSV(data)
	if err != nil {
		log.Printf("[import] phase=%s owner=%s: %v", domain.PhaseFailed, ownerID, err)
		return nil, err
	}

	return s.run(ctx, ownerID, rows), nil
}

// ImportWeeklyGrid runs the same pipeline over rows synthesized from a
// weekly day/meal-type assignment grid.
func (s *ImportService) ImportWeeklyGrid(ctx context.Context, ownerID string, grid domain.WeeklyGrid) (*domain.ImportSummary, error) {
	rows, err := SynthesizeGridRows(grid, s.now())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyFile
	}

	return s.run(ctx, ownerID, rows), nil
}

// ImportFoodList runs the weekly pipeline over a flat food-list upload. The
// foods are spread over a starter week grid first, then imported like any
// other grid.
func (s *ImportService) ImportFoodList(ctx context.Context, ownerID string, data []byte) (*domain.ImportSummary, error) {
	log.Printf("[import] phase=%s owner=%s bytes=%d", domain.PhaseParsing, ownerID, len(data))

	names, err := ParseFoodListCSV(data)
	if err != nil {
		log.Printf("[import] phase=%s owner=%s: %v", domain.PhaseFailed, ownerID, err)
		return nil, err
	}

	return s.ImportWeeklyGrid(ctx, ownerID, SpreadFoodsOverWeek(names))
}

// run validates rows with bounded concurrent enrichment, aggregates the
// survivors and persists the drafts sequentially.
func (s *ImportService) run(ctx context.Context, ownerID string, rows []domain.RawRow) *domain.ImportSummary {
	log.Printf("[import] phase=%s owner=%s rows=%d", domain.PhaseValidating, ownerID, len(rows))

	// Results land in index-addressed slices so the emitted order always
	// matches the input order, whatever order the lookups complete in.
	validated := make([]*domain.ValidatedRow, len(rows))
	rejections := make([]*RowRejection, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			validated[i], rejections[i] = s.validator.Validate(gctx, row, i)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	summary := &domain.ImportSummary{Issues: []domain.ImportIssue{}}
	valid := make([]*domain.ValidatedRow, 0, len(rows))
	for i := range rows {
		switch {
		case rejections[i] != nil:
			summary.Issues = append(summary.Issues, domain.ImportIssue{
				Row:      rejections[i].Row,
				Messages: rejections[i].Messages,
			})
		case validated[i] != nil:
			if !validated[i].Resolved {
				summary.Issues = append(summary.Issues, domain.ImportIssue{
					Row:      i + headerOffset,
					Messages: []string{fmt.Sprintf("no nutrition match for %q; imported without nutrition data", validated[i].FoodName)},
				})
			}
			valid = append(valid, validated[i])
		}
	}

	log.Printf("[import] phase=%s owner=%s valid=%d rejected=%d", domain.PhaseAggregating, ownerID, len(valid), len(rows)-len(valid))
	drafts := AggregateRows(valid)

	log.Printf("[import] phase=%s owner=%s drafts=%d", domain.PhasePersisting, ownerID, len(drafts))
	summary.Attempted = len(drafts)
	for _, draft := range drafts {
		if err := s.persistDraft(ctx, ownerID, draft); err != nil {
			summary.Issues = append(summary.Issues, domain.ImportIssue{
				Group:    draft.GroupKey(),
				Messages: []string{fmt.Sprintf("failed to save meal: %v", err)},
			})
			continue
		}
		summary.Succeeded++
	}

	log.Printf("[import] phase=%s owner=%s succeeded=%d attempted=%d issues=%d",
		domain.PhaseDone, ownerID, summary.Succeeded, summary.Attempted, len(summary.Issues))
	return summary
}

func (s *ImportService) persistDraft(ctx context.Context, ownerID string, draft *domain.MealDraft) error {
	now := s.now()
	return s.store.CreateMeal(ctx, &domain.Meal{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Date:      draft.Date,
		MealType:  draft.MealType,
		Items:     draft.Items,
		Completed: false,
		Notes:     draft.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
