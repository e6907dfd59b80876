// Package redis reads the odds and props snapshots other services keep in
// Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/fight-ledger/internal/domain/odds"
	"github.com/riskibarqy/fight-ledger/internal/domain/prop"
)

// commander is the slice of the go-redis client the cache reads through.
type commander interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	MGet(ctx context.Context, keys ...string) *goredis.SliceCmd
	SMembers(ctx context.Context, key string) *goredis.StringSliceCmd
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient opens a go-redis client and checks it answers.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

func EventsKey(sport string) string {
	return fmt.Sprintf("odds:%s:events", normalizeSport(sport))
}

func EventOddsKey(sport, eventID string) string {
	return fmt.Sprintf("odds:%s:event:%s", normalizeSport(sport), strings.TrimSpace(eventID))
}

func PropsKey(sport string) string {
	return fmt.Sprintf("props:%s", normalizeSport(sport))
}

type BoardCache struct {
	client commander
}

func NewBoardCache(client commander) *BoardCache {
	return &BoardCache{client: client}
}

// ListEventIDs returns the cached event ids for sport, sorted.
func (c *BoardCache) ListEventIDs(ctx context.Context, sport string) ([]string, error) {
	ids, err := c.client.SMembers(ctx, EventsKey(sport)).Result()
	if err != nil {
		return nil, fmt.Errorf("list cached events for %s: %w", sport, err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *BoardCache) GetEventOdds(ctx context.Context, sport, eventID string) (odds.EventOdds, bool, error) {
	raw, err := c.client.Get(ctx, EventOddsKey(sport, eventID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return odds.EventOdds{}, false, nil
	}
	if err != nil {
		return odds.EventOdds{}, false, fmt.Errorf("get cached odds %s/%s: %w", sport, eventID, err)
	}

	item, err := decodeEventOdds(sport, eventID, raw)
	if err != nil {
		return odds.EventOdds{}, false, err
	}
	return item, true, nil
}

// GetEventOddsBatch fetches several events in one round trip. Missing keys
// are skipped.
func (c *BoardCache) GetEventOddsBatch(ctx context.Context, sport string, eventIDs []string) ([]odds.EventOdds, error) {
	if len(eventIDs) == 0 {
		return []odds.EventOdds{}, nil
	}
	keys := make([]string, 0, len(eventIDs))
	for _, id := range eventIDs {
		keys = append(keys, EventOddsKey(sport, id))
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get cached odds for %s: %w", sport, err)
	}

	out := make([]odds.EventOdds, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		item, err := decodeEventOdds(sport, eventIDs[i], []byte(raw))
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ListProps returns the cached props for sport. A missing key is an empty list.
func (c *BoardCache) ListProps(ctx context.Context, sport string) ([]prop.Prop, error) {
	raw, err := c.client.Get(ctx, PropsKey(sport)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []prop.Prop{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached props for %s: %w", sport, err)
	}

	var items []prop.Prop
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cached props for %s: %w", sport, err)
	}
	for i := range items {
		if items[i].Sport == "" {
			items[i].Sport = normalizeSport(sport)
		}
	}
	return items, nil
}

type eventHeader struct {
	ID           string `json:"id"`
	HomeTeam     string `json:"home_team"`
	AwayTeam     string `json:"away_team"`
	CommenceTime string `json:"commence_time"`
}

func decodeEventOdds(sport, eventID string, raw []byte) (odds.EventOdds, error) {
	var header eventHeader
	if err := sonic.Unmarshal(raw, &header); err != nil {
		return odds.EventOdds{}, fmt.Errorf("decode cached odds %s/%s: %w", sport, eventID, err)
	}

	item := odds.EventOdds{
		ID:      firstNonEmpty(header.ID, eventID),
		Sport:   normalizeSport(sport),
		Matchup: odds.Matchup{Away: header.AwayTeam, Home: header.HomeTeam},
		Raw:     raw,
	}
	if header.CommenceTime != "" {
		if ts, err := time.Parse(time.RFC3339, header.CommenceTime); err == nil {
			item.CommenceTime = ts.UTC()
		}
	}
	return item, nil
}

func normalizeSport(sport string) string {
	return strings.ToLower(strings.TrimSpace(sport))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
