package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fight-ledger/internal/domain/prop"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
)

// PropSource reads cached props per sport.
type PropSource interface {
	ListProps(ctx context.Context, sport string) ([]prop.Prop, error)
}

type PropBoardQuery struct {
	Sports    []string `validate:"required,min=1,dive,required"`
	Threshold float64  `validate:"gte=0,lte=100"`
}

// SportProps is one sport's qualifying props, grouped by category.
type SportProps struct {
	Sport      string                 `json:"sport"`
	Total      int                    `json:"total"`
	Categories map[string][]prop.Prop `json:"categories"`
	Error      string                 `json:"error,omitempty"`
}

type PropBoard struct {
	Threshold float64      `json:"threshold"`
	Sports    []SportProps `json:"sports"`
}

type PropBoardService struct {
	source     PropSource
	taxonomies prop.Taxonomies
	workers    int
	logger     *logging.Logger
}

func NewPropBoardService(source PropSource, taxonomies prop.Taxonomies, workers int, logger *logging.Logger) *PropBoardService {
	if logger == nil {
		logger = logging.Default()
	}
	if taxonomies == nil {
		taxonomies = prop.DefaultTaxonomies
	}
	if workers <= 0 {
		workers = 4
	}
	return &PropBoardService{
		source:     source,
		taxonomies: taxonomies,
		workers:    workers,
		logger:     logger.Named("prop-board"),
	}
}

// Board loads each sport's props on a worker pool, keeps the ones at or
// above the threshold and groups them by category. A sport whose props
// cannot be read is reported with its error; the others still load.
func (s *PropBoardService) Board(ctx context.Context, query PropBoardQuery) (PropBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PropBoardService.Board")
	defer span.End()

	sports := normalizeSports(query.Sports)
	if len(sports) == 0 {
		return PropBoard{}, fmt.Errorf("%w: at least one sport is required", ErrInvalidInput)
	}
	threshold := query.Threshold
	if threshold <= 0 {
		threshold = prop.DefaultThreshold
	}

	pool, err := ants.NewPool(min(s.workers, len(sports)))
	if err != nil {
		return PropBoard{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]SportProps, len(sports))
	var workers sync.WaitGroup
	for i, sport := range sports {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[i] = s.loadSport(ctx, sport, threshold)
		}); err != nil {
			workers.Done()
			return PropBoard{}, fmt.Errorf("submit prop load to worker pool: %w", err)
		}
	}
	workers.Wait()

	return PropBoard{Threshold: threshold, Sports: results}, nil
}

func (s *PropBoardService) loadSport(ctx context.Context, sport string, threshold float64) SportProps {
	out := SportProps{Sport: sport, Categories: map[string][]prop.Prop{}}

	items, err := s.source.ListProps(ctx, sport)
	if err != nil {
		s.logger.WarnContext(ctx, "load cached props failed", "sport", sport, "error", err)
		out.Error = ErrDependencyUnavailable.Error()
		return out
	}
	for i := range items {
		if items[i].Sport == "" {
			items[i].Sport = sport
		}
	}

	filtered := prop.Filter(items, threshold, s.taxonomies)
	out.Total = len(filtered)
	out.Categories = prop.GroupByCategory(filtered)
	return out
}

// normalizeSports lowercases, drops blanks and duplicates, and sorts.
func normalizeSports(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}
