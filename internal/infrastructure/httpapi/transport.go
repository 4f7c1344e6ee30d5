package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/metrics"
	"github.com/ErlanBelekov/events-client/internal/repository"
	"github.com/ErlanBelekov/events-client/internal/requestid"
	"github.com/go-playground/validator/v10"
)

const userAgent = "events-client/1"

// Transport executes JSON requests against the events API. It reads the
// credential on every call and attaches it as a bearer token when present.
// Failures are always returned as *domain.APIError; nothing is retried.
type Transport struct {
	client   *http.Client
	store    repository.CredentialStore
	logger   *slog.Logger
	validate *validator.Validate
}

func NewTransport(store repository.CredentialStore, logger *slog.Logger) *Transport {
	return &Transport{
		client:   &http.Client{}, // no global timeout, callers bound requests with ctx
		store:    store,
		logger:   logger.With("component", "transport"),
		validate: validator.New(),
	}
}

// WithHTTPClient swaps the underlying client, e.g. for httptest servers.
func (t *Transport) WithHTTPClient(c *http.Client) *Transport {
	t.client = c
	return t
}

// Get, Post and Put decode the 2xx body into T. Envelope types are
// validated after decoding and fail closed with ErrMalformedResponse.
func Get[T any](ctx context.Context, t *Transport, rawURL string) (T, error) {
	var out T
	err := t.Do(ctx, http.MethodGet, rawURL, nil, &out)
	return out, err
}

func Post[T any](ctx context.Context, t *Transport, rawURL string, body any) (T, error) {
	var out T
	err := t.Do(ctx, http.MethodPost, rawURL, body, &out)
	return out, err
}

func Put[T any](ctx context.Context, t *Transport, rawURL string, body any) (T, error) {
	var out T
	err := t.Do(ctx, http.MethodPut, rawURL, body, &out)
	return out, err
}

// Delete sends a DELETE and expects no content.
func (t *Transport) Delete(ctx context.Context, rawURL string) error {
	return t.Do(ctx, http.MethodDelete, rawURL, nil, nil)
}

// Do sends one request. body is ignored for GET and DELETE. When out is nil
// the response body is discarded.
func (t *Transport) Do(ctx context.Context, method, rawURL string, body, out any) error {
	ctx, _ = requestid.Ensure(ctx)
	route := routeOf(rawURL)
	start := time.Now()

	status, err := t.do(ctx, method, rawURL, body, out)

	statusLabel := "error"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
	}
	metrics.APIRequestDuration.WithLabelValues(method, route, statusLabel).Observe(time.Since(start).Seconds())
	metrics.APIRequestsTotal.WithLabelValues(method, route, statusLabel).Inc()

	if err != nil {
		level := slog.LevelWarn
		if status >= 400 && status < 500 {
			level = slog.LevelDebug
		}
		t.logger.Log(ctx, level, "api call failed", "method", method, "route", route, "status", status, "error", err)
		return err
	}
	t.logger.DebugContext(ctx, "api call", "method", method, "route", route, "status", status, "duration", time.Since(start))
	return nil
}

func (t *Transport) do(ctx context.Context, method, rawURL string, body, out any) (int, error) {
	req, err := t.newRequest(ctx, method, rawURL, body)
	if err != nil {
		return 0, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, networkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, errorFromResponse(resp.StatusCode, data)
	}

	if out == nil {
		return resp.StatusCode, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, malformed(resp.StatusCode, fmt.Errorf("empty body"))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return resp.StatusCode, malformed(resp.StatusCode, err)
	}
	if env, ok := out.(envelope); ok {
		if err := t.validate.Struct(env); err != nil {
			return resp.StatusCode, malformed(resp.StatusCode, err)
		}
	}
	return resp.StatusCode, nil
}

func (t *Transport) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	hasBody := body != nil && method != http.MethodGet && method != http.MethodDelete
	if hasBody {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, clientError("encode body", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, clientError("build request", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestid.Header, requestid.FromContext(ctx))
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := t.store.Get(ctx)
	if err != nil {
		return nil, clientError("read credential", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// Reachable reports whether the server answers HTTP at all; any status
// counts as reachable. No credential is sent.
func (t *Transport) Reachable(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return clientError("build request", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return networkError(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body) // drain so the connection can be reused by the pool
	return resp.Body.Close()
}

// errorBody accepts both statusCode and status spellings.
type errorBody struct {
	StatusCode int            `json:"statusCode"`
	Status     int            `json:"status"`
	Error      string         `json:"error"`
	Message    domain.Message `json:"message"`
}

func errorFromResponse(status int, data []byte) *domain.APIError {
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil || (eb.Error == "" && len(eb.Message) == 0) {
		return &domain.APIError{
			StatusCode: status,
			Label:      http.StatusText(status),
			Message:    domain.Message{fmt.Sprintf("request failed with status %d", status)},
		}
	}

	apiErr := &domain.APIError{
		StatusCode: status,
		Label:      eb.Error,
		Message:    eb.Message,
	}
	if eb.StatusCode != 0 {
		apiErr.StatusCode = eb.StatusCode
	} else if eb.Status != 0 {
		apiErr.StatusCode = eb.Status
	}
	if apiErr.Label == "" {
		apiErr.Label = http.StatusText(apiErr.StatusCode)
	}
	if len(apiErr.Message) == 0 {
		apiErr.Message = domain.Message{apiErr.Label}
	}
	return apiErr
}

func networkError(err error) *domain.APIError {
	return &domain.APIError{
		Label:   "Network Error",
		Message: domain.Message{err.Error()},
		Err:     fmt.Errorf("%w: %w", domain.ErrNetwork, err),
	}
}

func malformed(status int, err error) *domain.APIError {
	return &domain.APIError{
		StatusCode: status,
		Label:      "Malformed Response",
		Message:    domain.Message{err.Error()},
		Err:        fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err),
	}
}

func clientError(op string, err error) *domain.APIError {
	return &domain.APIError{
		Label:   "Client Error",
		Message: domain.Message{op + ": " + err.Error()},
		Err:     fmt.Errorf("%s: %w", op, err),
	}
}

// routeOf collapses numeric path segments so metric labels stay bounded:
// /events/12/attend -> /events/:id/attend.
func routeOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, s := range segments {
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}
