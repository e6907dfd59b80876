package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/fight-ledger/internal/domain/bout"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/platform/resilience"
	"github.com/riskibarqy/fight-ledger/internal/usecase"
)

const (
	defaultBaseURL   = "https://site.api.espn.com/apis/site/v2/sports/mma/ufc"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "fight-ledger/1.0"
	maxBodyBytes     = 6 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
	retry      resilience.RetryPolicy
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

var _ usecase.EventProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	retry := resilience.DefaultRetryPolicy()
	retry.MaxRetries = max(cfg.MaxRetries, 0)
	if cfg.RetryDelay > 0 {
		retry.InitialDelay = cfg.RetryDelay
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
		retry:      retry,
		logger:     logger.Named("espn"),
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
	}
}

func (c *Client) ListEventsForDate(ctx context.Context, day time.Time) ([]usecase.ExternalEvent, error) {
	date := day.UTC().Format("20060102")

	var envelope scoreboardEnvelope
	if err := c.getJSON(ctx, "/scoreboard", url.Values{"dates": {date}}, &envelope); err != nil {
		return nil, fmt.Errorf("list events date=%s: %w", date, err)
	}

	out := make([]usecase.ExternalEvent, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			continue
		}
		event := usecase.ExternalEvent{
			ID:        id,
			Name:      strings.TrimSpace(item.Name),
			Completed: item.Status.Type.Completed,
		}
		event.Date = parseEventDate(item.Date)
		if len(item.Competitions) > 0 {
			v := item.Competitions[0].Venue
			event.Venue = strings.TrimSpace(v.FullName)
			event.City = strings.TrimSpace(v.Address.City)
			event.Country = strings.TrimSpace(v.Address.Country)
		}
		out = append(out, event)
	}
	return out, nil
}

func (c *Client) FetchEventDetail(ctx context.Context, eventID string) (usecase.ExternalEventDetail, bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return usecase.ExternalEventDetail{}, false, fmt.Errorf("%w: event id is required", usecase.ErrInvalidInput)
	}

	var envelope summaryEnvelope
	if err := c.getJSON(ctx, "/summary", url.Values{"event": {eventID}}, &envelope); err != nil {
		return usecase.ExternalEventDetail{}, false, fmt.Errorf("fetch event detail event_id=%s: %w", eventID, err)
	}

	competition, ok := envelope.competition()
	if !ok || len(competition.Competitors) < 2 {
		return usecase.ExternalEventDetail{}, false, nil
	}

	detail := usecase.ExternalEventDetail{
		EventID:     eventID,
		Name:        firstNonEmpty(envelope.Name, envelope.Header.Name),
		Competitors: make([]usecase.ExternalCompetitor, 0, len(competition.Competitors)),
		Notes:       make([]string, 0, len(envelope.Notes)+len(competition.Notes)),
	}
	for _, item := range competition.Competitors {
		detail.Competitors = append(detail.Competitors, usecase.ExternalCompetitor{
			ID:          item.fighterID(),
			DisplayName: firstNonEmpty(item.Athlete.DisplayName, item.Athlete.FullName),
			Nickname:    strings.TrimSpace(item.Athlete.Nickname),
			Country:     strings.TrimSpace(item.Athlete.Flag.Alt),
			Winner:      item.Winner,
		})
	}
	// Bout-level notes come last so they take part in precedence after the
	// event-wide ones.
	for _, n := range envelope.Notes {
		if text := n.content(); text != "" {
			detail.Notes = append(detail.Notes, text)
		}
	}
	for _, n := range competition.Notes {
		if text := n.content(); text != "" {
			detail.Notes = append(detail.Notes, text)
		}
	}
	for _, item := range envelope.Boxscore.Competitors {
		fighterID := strings.TrimSpace(item.Athlete.ID)
		if fighterID == "" {
			continue
		}
		lines := make([]bout.StatLine, 0, len(item.Statistics))
		for _, stat := range item.Statistics {
			lines = append(lines, bout.StatLine{
				Name:         firstNonEmpty(stat.Name, stat.Label),
				DisplayValue: stat.DisplayValue,
			})
		}
		detail.Boxscore = append(detail.Boxscore, usecase.ExternalFighterBoxscore{
			FighterID:  fighterID,
			Statistics: lines,
		})
	}

	return detail, true, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "path", path, "state", c.breaker.State())
		return fmt.Errorf("%w: event provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var raw []byte
	err := resilience.Retry(ctx, c.retry, isTransient, func(attempt int) error {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if reqErr != nil {
			if attempt < c.retry.MaxRetries && isTransient(reqErr) {
				c.logger.DebugContext(ctx, "espn request failed, retrying", "url", fullURL, "attempt", attempt+1, "error", reqErr)
			}
			return reqErr
		}
		raw = body
		return nil
	})
	c.breaker.Record(err != nil && isTransient(err))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	if len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode espn payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(fmt.Errorf("send request: %w", err), errESPNTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("read response body: %w", err), errESPNTransient)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	statusErr := fmt.Errorf("espn status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	if isRetryableStatus(resp.StatusCode) {
		return nil, crerr.Mark(statusErr, errESPNTransient)
	}
	return nil, statusErr
}

func isTransient(err error) bool {
	return crerr.Is(err, errESPNTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func parseEventDate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04Z",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
