package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/fight-ledger/internal/domain/record"
	"github.com/riskibarqy/fight-ledger/internal/platform/logging"
	"github.com/riskibarqy/fight-ledger/internal/platform/resilience"
)

const (
	defaultTimeout  = 10 * time.Second
	restPathPrefix  = "/rest/v1/"
	mergeDuplicates = "resolution=merge-duplicates"
)

var errStoreTransient = crerr.New("record store transient failure")

type ClientConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Retry          resilience.RetryPolicy
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// RecordClient upserts records through a PostgREST-compatible endpoint,
// asking the server to merge rows that collide on the collection's keys.
type RecordClient struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	retry   resilience.RetryPolicy
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

var _ record.Upserter = (*RecordClient)(nil)

func NewRecordClient(cfg ClientConfig) (*RecordClient, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid STORE_BASE_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &RecordClient{
		client: &fasthttp.Client{
			Name:                "fight-ledger",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		retry:   resilience.NormalizeRetryPolicy(cfg.Retry),
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:  logger.Named("record_store"),
	}, nil
}

func (c *RecordClient) Upsert(ctx context.Context, collection record.Collection, rec any) error {
	if !collection.Valid() {
		return &record.UnknownCollectionError{Collection: collection}
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "record store circuit breaker rejected request", "collection", collection.String(), "state", c.breaker.State())
		return fmt.Errorf("record store is temporarily unavailable: %w", err)
	}

	body, err := sonic.Marshal(rec)
	if err != nil {
		return crerr.Wrap(err, "marshal record")
	}
	endpoint := c.endpoint(collection)

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("record_store.collection", collection.String()),
			attribute.String("record_store.url", endpoint),
		)
	}

	err = resilience.Retry(ctx, c.retry, isTransient, func(attempt int) error {
		postErr := c.post(ctx, endpoint, body)
		if postErr != nil && isTransient(postErr) && attempt < c.retry.MaxRetries {
			c.logger.DebugContext(ctx, "record upsert failed, retrying",
				"collection", collection.String(),
				"attempt", attempt+1,
				"error", postErr,
			)
		}
		return postErr
	})
	c.breaker.Record(err != nil && isTransient(err))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", collection, err)
	}
	return nil
}

func (c *RecordClient) post(ctx context.Context, endpoint string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Prefer", mergeDuplicates)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.SetBody(body)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return crerr.Mark(fmt.Errorf("send request: %w", err), errStoreTransient)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}
	statusErr := fmt.Errorf("status=%d body=%s", status, truncateForLog(string(resp.Body()), 512))
	if isRetryableStatus(status) {
		return crerr.Mark(statusErr, errStoreTransient)
	}
	return statusErr
}

func (c *RecordClient) endpoint(collection record.Collection) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(restPathPrefix)
	_, _ = buf.WriteString(collection.String())
	_, _ = buf.WriteString("?on_conflict=")
	_, _ = buf.WriteString(url.QueryEscape(collection.OnConflict()))
	return buf.String()
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isTransient(err error) bool {
	return crerr.Is(err, errStoreTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
