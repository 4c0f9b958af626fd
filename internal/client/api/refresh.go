package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/collectivehq/collective/internal/client/tokens"
)

// refreshAccessToken exchanges the refresh token for a new access token and
// stores it. The refresh token itself is not rotated; it stays valid until
// the backend expires it.
//
// Concurrent callers are collapsed into a single in-flight exchange: when
// several requests hit 401 at once, exactly one refresh call goes out and
// every waiter observes the same outcome. Without this, a burst of expired
// requests would each race their own refresh and the token store writes
// would interleave.
func (c *HTTPClient) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refreshing.Do("refresh", func() (any, error) {
		refresh, err := c.tokens.Get(ctx, tokens.Refresh)
		if err != nil {
			return nil, err
		}
		if refresh == "" {
			return nil, ErrRefreshFailed
		}

		var out refreshResponse
		req := request{
			method: http.MethodPost,
			path:   "/auth/token/refresh/",
			body:   map[string]string{"refresh": refresh},
		}
		if err := c.do(ctx, req, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
		}
		if out.Access == "" {
			return nil, ErrRefreshFailed
		}

		if err := c.tokens.Set(ctx, tokens.Access, out.Access); err != nil {
			return nil, err
		}
		return out.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
