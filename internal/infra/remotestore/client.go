package remotestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/KasumiMercury/primind-reminder-engine/internal/domain"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-engine/internal/observability/tracing"
	"github.com/KasumiMercury/primind-reminder-engine/internal/wire"
)

const defaultMaxRetries = 3

var _ domain.ReminderStore = (*Client)(nil)

// Client talks to the remote reminder store over its JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	metrics    *metrics.EngineMetrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxRetries = n
		}
	}
}

func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) FetchDue(ctx context.Context, cred domain.Credential, windowPast, windowFuture time.Duration) ([]*domain.ReminderDefinition, error) {
	q := url.Values{}
	q.Set("window_past_minutes", strconv.Itoa(int(windowPast.Minutes())))
	q.Set("window_future_minutes", strconv.Itoa(int(windowFuture.Minutes())))

	var resp wire.RemindersResponse
	if err := c.do(ctx, "fetch_due", http.MethodGet, "/api/v1/reminders/due", q, cred.Token, nil, &resp); err != nil {
		return nil, err
	}

	defs := decodeReminders(ctx, resp.Reminders)

	slog.DebugContext(ctx, "fetched due reminders",
		slog.String("user_id", cred.UserID),
		slog.Int("count", len(defs)),
	)

	return defs, nil
}

func (c *Client) RecordTrigger(ctx context.Context, cred domain.Credential, write domain.TriggerWrite) (*domain.ReminderDefinition, error) {
	body := wire.TriggerRequest{
		NextTriggerTime:      write.NextTriggerTime,
		PreviousTriggerCount: write.PreviousTriggerCount,
	}

	var resp wire.ReminderRecord
	path := "/api/v1/reminders/" + url.PathEscape(write.ReminderID) + "/trigger"
	if err := c.do(ctx, "record_trigger", http.MethodPost, path, nil, cred.Token, body, &resp); err != nil {
		return nil, err
	}

	def, err := resp.ToDomain()
	if err != nil {
		slog.WarnContext(ctx, "recorded reminder has an undecodable schedule",
			slog.String("reminder_id", write.ReminderID),
			slog.String("error", err.Error()),
		)
	}
	return def, nil
}

func (c *Client) ListReminders(ctx context.Context, cred domain.Credential) ([]*domain.ReminderDefinition, error) {
	var resp wire.RemindersResponse
	if err := c.do(ctx, "list_reminders", http.MethodGet, "/api/v1/reminders", nil, cred.Token, nil, &resp); err != nil {
		return nil, err
	}
	return decodeReminders(ctx, resp.Reminders), nil
}

// decodeReminders keeps records whose schedule is malformed so that the
// calculator can apply its fallback instead of dropping the whole batch.
func decodeReminders(ctx context.Context, records []wire.ReminderRecord) []*domain.ReminderDefinition {
	defs := make([]*domain.ReminderDefinition, 0, len(records))
	for _, rec := range records {
		def, err := rec.ToDomain()
		if err != nil {
			slog.WarnContext(ctx, "reminder schedule could not be decoded",
				slog.String("reminder_id", rec.ID),
				slog.String("error", err.Error()),
			)
		}
		defs = append(defs, def)
	}
	return defs
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, token string, body, out any) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}
	target := u.String()

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	ctx, span := tracing.StartStoreSpan(ctx, operation, target)
	defer span.End()

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying reminder store request",
				slog.String("operation", operation),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)

			select {
			case <-ctx.Done():
				tracing.RecordResult(span, ctx.Err())
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := c.send(ctx, method, target, token, payload, out)
		if err == nil {
			c.recordOutcome(ctx, operation, nil)
			tracing.RecordResult(span, nil)
			return nil
		}
		if !errors.Is(err, domain.ErrTransientNetwork) {
			c.recordOutcome(ctx, operation, err)
			tracing.RecordResult(span, err)
			return err
		}
		lastErr = err
	}

	err = fmt.Errorf("%s failed after %d attempts: %w", operation, c.maxRetries, lastErr)
	slog.WarnContext(ctx, "reminder store request failed",
		slog.String("operation", operation),
		slog.String("url", target),
		slog.String("error", err.Error()),
	)
	c.recordOutcome(ctx, operation, err)
	tracing.RecordResult(span, err)
	return err
}

func (c *Client) send(ctx context.Context, method, target, token string, payload []byte, out any) error {
	var reader io.Reader = http.NoBody
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", domain.ErrTransientNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrCredentialExpired
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrReminderNotFound
	case resp.StatusCode == http.StatusConflict:
		return domain.ErrTriggerConflict
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError &&
		resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusRequestTimeout:
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return fmt.Errorf("%w: status code %d", domain.ErrTransientNetwork, resp.StatusCode)
	}
}

func (c *Client) recordOutcome(ctx context.Context, operation string, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordStoreRequest(ctx, operation, outcomeOf(err))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrCredentialExpired):
		return "unauthorized"
	case errors.Is(err, domain.ErrTriggerConflict):
		return "conflict"
	case errors.Is(err, domain.ErrReminderNotFound):
		return "not_found"
	default:
		return "failure"
	}
}
