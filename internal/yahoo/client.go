package yahoo

import (
	"context"
	"log/slog"
	"time"

	"resty.dev/v3"

	"marketterm/internal/ratelimit"
)

const defaultMaxAttempts = 3

// Client wraps every upstream call with session attachment, status-code
// branching, and bounded retry. Failures surface as errors to the
// orchestration layer, which translates them into empty results; nothing
// here is fatal.
type Client struct {
	http      *resty.Client
	auth      *Authenticator
	limiter   *ratelimit.Limiter
	query1URL string
	query2URL string

	maxAttempts    int
	retryDelay     time.Duration
	rateLimitDelay time.Duration

	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// ClientOptions configures a Client.
type ClientOptions struct {
	Query1BaseURL  string
	Query2BaseURL  string
	UserAgent      string
	RetryDelay     time.Duration
	RateLimitDelay time.Duration
	Logger         *slog.Logger
}

// NewClient creates a Client that authenticates through auth.
func NewClient(auth *Authenticator, opts ClientOptions) *Client {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.RateLimitDelay <= 0 {
		opts.RateLimitDelay = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", opts.UserAgent)

	return &Client{
		http:           client,
		auth:           auth,
		limiter:        ratelimit.GetLimiter(),
		query1URL:      opts.Query1BaseURL,
		query2URL:      opts.Query2BaseURL,
		maxAttempts:    defaultMaxAttempts,
		retryDelay:     opts.RetryDelay,
		rateLimitDelay: opts.RateLimitDelay,
		logger:         opts.Logger,
		sleep:          sleepCtx,
	}
}

// sendFunc issues one request with the given session attached. Endpoints
// that need no session receive the zero Session.
type sendFunc func(ctx context.Context, sess Session) (*resty.Response, error)

// emptyFunc reports whether a 2xx response carried no usable data. The
// upstream sometimes returns zero results even on success, so one such
// response per call is treated as suspicious and retried.
type emptyFunc func() bool

// do runs one logical upstream call under the retry policy:
//
//   - 401: invalidate the session and retry once with a fresh one, not
//     counted against the attempt budget
//   - 429: sleep the rate-limit backoff and retry
//   - other non-2xx or transport error: retry after a short delay
//   - empty-but-200: retried once
//
// Exhausting the budget returns the last error; callers map it to an
// empty result.
func (c *Client) do(ctx context.Context, ep ratelimit.Endpoint, withSession bool, send sendFunc, empty emptyFunc) error {
	var sess Session
	if withSession {
		var ok bool
		sess, ok = c.auth.EnsureSession(ctx)
		if !ok {
			return NewAuthError("could not obtain session")
		}
	}

	sessionRetried := false
	emptyRetried := false
	var lastErr *FetchError

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := c.limiter.Wait(ctx, ep); err != nil {
			return NewNetworkError(err)
		}

		resp, err := send(ctx, sess)

		if err == nil && resp.StatusCode() == 401 && withSession && !sessionRetried {
			// Stale crumb. Force a re-handshake and go again without
			// spending an attempt.
			sessionRetried = true
			c.auth.Invalidate()
			var ok bool
			sess, ok = c.auth.EnsureSession(ctx)
			if !ok {
				return NewAuthError("could not refresh session")
			}
			attempt--
			continue
		}

		if err != nil {
			lastErr = NewNetworkError(err)
		} else if !resp.IsSuccess() {
			lastErr = ClassifyHTTPError(resp.StatusCode())
		} else if empty != nil && empty() && !emptyRetried {
			emptyRetried = true
			lastErr = NewEmptyError("empty response for a non-empty request")
			c.logger.Debug("retrying suspicious empty response", "endpoint", string(ep))
		} else {
			return nil
		}

		if attempt == c.maxAttempts {
			break
		}

		delay := c.retryDelay
		if lastErr.Type == ErrorTypeRateLimit {
			delay = c.rateLimitDelay
		}
		if err := c.sleep(ctx, delay); err != nil {
			break
		}
	}

	return lastErr
}
