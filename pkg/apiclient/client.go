package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goodmarket/storefront-go/pkg/logger"
	"github.com/goodmarket/storefront-go/pkg/tokenstore"
)

// UnauthorizedHook is invoked whenever any request that carried a credential
// comes back 401. It is the single place expiry detection happens; callers
// must not re-implement 401 handling per call site.
type UnauthorizedHook func()

// Client is the HTTP transport shared by every service client in the SDK.
// It owns the two cross-cutting interceptors of the session protocol:
// attaching the current credential to outgoing requests, and capturing
// rotated credentials from response headers after every request, success or
// failure.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         tokenstore.Store
	log           *slog.Logger
	credentialTTL time.Duration
	unauthorized  UnauthorizedHook
}

// New creates a client for the given API base URL. The token store is
// required: it is read on every request and written on every rotation.
// Panics on missing arguments to fail fast on wiring mistakes.
func New(baseURL string, store tokenstore.Store, opts ...Option) *Client {
	if baseURL == "" {
		panic("apiclient: base URL is required")
	}
	if store == nil {
		panic("apiclient: token store is required")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second, // hung requests must eventually reject
		},
		store:         store,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		credentialTTL: 7 * 24 * time.Hour,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// OnUnauthorized registers the forced-logout hook. Wired once by the facade;
// later registrations replace the hook.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.unauthorized = hook
}

// Store returns the token store the client reads credentials from.
func (c *Client) Store() tokenstore.Store {
	return c.store
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	// Request interceptor: attach the current credential if one exists.
	// Absence never blocks the request; some endpoints are public.
	cred, authenticated := c.store.Credential(ctx)
	if authenticated {
		req.Header.Set("Authorization", cred.Authorization())
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed",
			slog.String("method", method), slog.String("path", path),
			logger.RequestID(requestID), logger.Error(err))
		return errors.Join(ErrTransient, err)
	}
	defer resp.Body.Close()

	// Response post-processing runs for every completed request, regardless
	// of status, so token rotation is never missed.
	c.capture(ctx, resp)

	c.log.DebugContext(ctx, "request completed",
		slog.String("method", method), slog.String("path", path),
		logger.Status(resp.StatusCode), logger.Duration(time.Since(start)),
		logger.RequestID(requestID))

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized && authenticated && c.unauthorized != nil {
			c.unauthorized()
		}
		return errors.Join(
			mapStatus(resp.StatusCode, authenticated),
			&APIError{Status: resp.StatusCode, Message: readMessage(resp.Body), RequestID: requestID},
		)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrTransient, fmt.Errorf("decode response body: %w", err))
	}
	return nil
}

// capture inspects a completed response for a rotated credential and
// persists it. A missing header is a no-op; a failed write is logged and
// otherwise ignored, since the server already accepted the request.
func (c *Client) capture(ctx context.Context, resp *http.Response) {
	header := resp.Header.Get("Authorization")
	if header == "" {
		return
	}

	cred := tokenstore.ParseAuthorization(header, c.credentialTTL)
	if err := c.store.SetCredential(ctx, cred); err != nil {
		c.log.WarnContext(ctx, "failed to persist rotated credential", logger.Error(err))
	}
}

// readMessage extracts the server-side error message from common response
// shapes: {"message": ...} or {"error": ...}.
func readMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var shape struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return ""
	}
	if shape.Message != "" {
		return shape.Message
	}
	return shape.Error
}
