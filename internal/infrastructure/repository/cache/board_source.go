package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/fight-ledger/internal/domain/odds"
	"github.com/riskibarqy/fight-ledger/internal/domain/prop"
	basecache "github.com/riskibarqy/fight-ledger/internal/platform/cache"
)

// BoardReader is the read side of the shared odds and props cache.
type BoardReader interface {
	ListEventIDs(ctx context.Context, sport string) ([]string, error)
	GetEventOdds(ctx context.Context, sport, eventID string) (odds.EventOdds, bool, error)
	GetEventOddsBatch(ctx context.Context, sport string, eventIDs []string) ([]odds.EventOdds, error)
	ListProps(ctx context.Context, sport string) ([]prop.Prop, error)
}

// BoardSource keeps sport-level lookups in process for a short TTL so a
// burst of board requests costs one round trip to Redis per sport. Single
// event reads always go to the reader.
type BoardSource struct {
	next  BoardReader
	cache *basecache.Store
}

func NewBoardSource(next BoardReader, cache *basecache.Store) *BoardSource {
	return &BoardSource{next: next, cache: cache}
}

func (s *BoardSource) ListEventIDs(ctx context.Context, sport string) ([]string, error) {
	key := "odds:events:" + sportKey(sport)
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		ids, err := s.next.ListEventIDs(ctx, sport)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), ids...), nil
	})
	if err != nil {
		return nil, err
	}

	ids, _ := v.([]string)
	return append([]string(nil), ids...), nil
}

func (s *BoardSource) GetEventOdds(ctx context.Context, sport, eventID string) (odds.EventOdds, bool, error) {
	return s.next.GetEventOdds(ctx, sport, eventID)
}

func (s *BoardSource) GetEventOddsBatch(ctx context.Context, sport string, eventIDs []string) ([]odds.EventOdds, error) {
	return s.next.GetEventOddsBatch(ctx, sport, eventIDs)
}

func (s *BoardSource) ListProps(ctx context.Context, sport string) ([]prop.Prop, error) {
	key := "props:" + sportKey(sport)
	v, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := s.next.ListProps(ctx, sport)
		if err != nil {
			return nil, err
		}
		return append([]prop.Prop(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]prop.Prop)
	return append([]prop.Prop(nil), items...), nil
}

func sportKey(sport string) string {
	return strings.ToLower(strings.TrimSpace(sport))
}
