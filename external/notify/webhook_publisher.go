// Package notify pushes standings changes to subscriber endpoints.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/rizkyfalih/league-manager/internal/platform/logging"
	"github.com/rizkyfalih/league-manager/internal/platform/resilience"
	"github.com/rizkyfalih/league-manager/internal/usecase"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	EndpointURL    string
	SigningToken   string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher delivers standings-updated events over HTTP POST.
type WebhookPublisher struct {
	client         *fasthttp.Client
	endpointURL    string
	signingToken   string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		endpointURL:    strings.TrimSpace(cfg.EndpointURL),
		signingToken:   strings.TrimSpace(cfg.SigningToken),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (p *WebhookPublisher) PublishStandingsUpdated(ctx context.Context, event usecase.StandingsUpdatedEvent) error {
	if p.endpointURL == "" {
		return crerr.New("webhook endpoint url is required")
	}

	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected event", "state", p.breaker.State())
			return fmt.Errorf("webhook endpoint is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(newStandingsUpdatedPayload(event))
	if err != nil {
		return crerr.Wrap(err, "marshal standings event")
	}

	preview := buildRequestPreview(p.endpointURL, body, p.signingToken != "")
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.endpoint_url", p.endpointURL),
			attribute.String("webhook.request_preview", preview),
			attribute.Int("webhook.entries", len(event.Entries)),
		)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.endpointURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.signingToken != "" {
		req.Header.Set("X-Webhook-Token", p.signingToken)
	}
	req.SetBody(body)

	deadline := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	err = p.client.DoDeadline(req, resp, deadline)
	if err != nil {
		callErr := fmt.Errorf("%w: post standings event: %v", errWebhookTransient, err)
		p.recordCircuitResult(callErr)
		return callErr
	}

	statusCode := resp.StatusCode()
	if statusCode/100 != 2 {
		raw := strings.TrimSpace(string(resp.Body()))
		if isRetryableStatus(statusCode) {
			callErr := fmt.Errorf("%w: post standings event status=%d body=%s", errWebhookTransient, statusCode, truncateForLog(raw, 4096))
			p.recordCircuitResult(callErr)
			return callErr
		}

		callErr := fmt.Errorf("post standings event status=%d body=%s", statusCode, truncateForLog(raw, 4096))
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "standings event published",
		"season_id", event.SeasonID,
		"ranking_date", event.Date.Format(time.DateOnly),
		"entries", len(event.Entries),
	)
	p.recordCircuitResult(nil)
	return nil
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

type standingsUpdatedPayload struct {
	Event    string                  `json:"event"`
	SeasonID string                  `json:"seasonId"`
	Date     string                  `json:"date"`
	Entries  []standingsEntryPayload `json:"entries"`
}

type standingsEntryPayload struct {
	TeamID string `json:"teamId"`
	Rank   int    `json:"rank"`
	Points int    `json:"points"`
}

func newStandingsUpdatedPayload(event usecase.StandingsUpdatedEvent) standingsUpdatedPayload {
	entries := make([]standingsEntryPayload, 0, len(event.Entries))
	for _, entry := range event.Entries {
		entries = append(entries, standingsEntryPayload{
			TeamID: entry.TeamID,
			Rank:   entry.Rank,
			Points: entry.Points,
		})
	}

	return standingsUpdatedPayload{
		Event:    "standings.updated",
		SeasonID: event.SeasonID,
		Date:     event.Date.Format(time.DateOnly),
		Entries:  entries,
	}
}

func buildRequestPreview(endpointURL string, body []byte, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(endpointURL))
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	if withToken {
		appendPart("-H")
		appendPart(shellQuote("X-Webhook-Token: ***"))
	}
	appendPart("-d")
	appendPart(shellQuote(truncateForLog(string(body), 4096)))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
