package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/collectivehq/collective/internal/client/tokens"
	"github.com/collectivehq/collective/internal/common"
	"github.com/collectivehq/collective/internal/logging"
)

// HTTPClient is the REST implementation of Client.
//
// Every call goes through do(), which attaches the bearer token and owns the
// refresh-and-retry sequence. The retried flag travels on the request value
// itself, so one original call can trigger at most one refresh no matter how
// it is re-issued.
var _ Client = (*HTTPClient)(nil)

type HTTPClient struct {
	baseURL    string
	http       *http.Client
	tokens     tokens.Store
	refreshing singleflight.Group
	log        logging.Logger

	// onAuthLost runs when a refresh terminally fails. The composition root
	// points it at the session store's Logout.
	onAuthLost func(ctx context.Context)
}

func NewHTTPClient(baseURL string, store tokens.Store, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  store,
		log:     log,
	}
}

// SetAuthLostHandler registers the hook invoked after a terminal refresh
// failure. Must be called before the client is shared between goroutines.
func (c *HTTPClient) SetAuthLostHandler(fn func(ctx context.Context)) {
	c.onAuthLost = fn
}

// request describes one logical REST call. retried marks that the call has
// already been re-issued once after a refresh.
type request struct {
	method  string
	path    string
	body    any
	authed  bool
	retried bool
}

func (c *HTTPClient) send(ctx context.Context, r request, token string) (*http.Response, error) {
	var rd io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	return c.http.Do(req)
}

// do issues one request and decodes a 2xx JSON body into out (out may be
// nil). On the first 401 of an authenticated call it refreshes the access
// token and re-issues the request; the caller never observes the
// intermediate 401.
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	var token string
	if r.authed {
		var err error
		token, err = c.tokens.Get(ctx, tokens.Access)
		if err != nil {
			return err
		}
	}

	resp, err := c.send(ctx, r, token)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && r.authed {
		_, _ = io.Copy(io.Discard, resp.Body)

		if r.retried {
			// Already retried once after a refresh; fail straight through.
			return ErrAuthExpired
		}
		r.retried = true

		if _, err := c.refreshAccessToken(ctx); err != nil {
			c.authLost(ctx)
			return err
		}

		c.log.Debug(ctx, "access token refreshed, retrying request", "path", r.path)
		return c.do(ctx, r, out)
	}

	return c.decode(resp, r, out)
}

func (c *HTTPClient) decode(resp *http.Response, r request, out any) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", r.method, r.path, err)
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		// Unauthenticated endpoints only (login, refresh): bad credentials.
		_, _ = io.Copy(io.Discard, resp.Body)
		return common.ErrUnauthorized

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &ValidationError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}

	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s %s returned %d", ErrServer, r.method, r.path, resp.StatusCode)
	}
}

func (c *HTTPClient) authLost(ctx context.Context) {
	c.log.Warn(ctx, "session refresh failed, forcing logout")
	if c.onAuthLost != nil {
		c.onAuthLost(ctx)
	}
}

// Login exchanges credentials for a token pair and stores both.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	var out tokenPairResponse
	req := request{
		method: http.MethodPost,
		path:   "/auth/token/",
		body:   map[string]string{"username": username, "password": password},
	}
	if err := c.do(ctx, req, &out); err != nil {
		return err
	}
	if out.Access == "" || out.Refresh == "" {
		return fmt.Errorf("%w: token endpoint returned empty pair", ErrServer)
	}

	if err := c.tokens.Set(ctx, tokens.Access, out.Access); err != nil {
		return err
	}
	return c.tokens.Set(ctx, tokens.Refresh, out.Refresh)
}

// Ping probes backend reachability. Used by the online-status watcher.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.do(ctx, request{method: http.MethodGet, path: "/health/"}, nil)
}
