// Package yahoo implements the client for the Yahoo Finance HTTP surface:
// the cookie/crumb session handshake, the resilient request policy, and the
// typed endpoint wrappers that normalize the upstream's loosely shaped JSON.
package yahoo

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"resty.dev/v3"
)

// Session holds the credentials required by the protected endpoints: a
// cookie harvested from the seed endpoint and a short-lived signed crumb.
type Session struct {
	Cookie    string
	Crumb     string
	ExpiresAt time.Time
}

// Valid reports whether the session can still be used at time now.
func (s Session) Valid(now time.Time) bool {
	return s.Cookie != "" && s.Crumb != "" && now.Before(s.ExpiresAt)
}

// Authenticator obtains and refreshes the upstream session. Concurrent
// callers needing a fresh session coalesce into one in-flight handshake;
// nobody ever triggers a parallel one.
type Authenticator struct {
	http      *resty.Client
	seedURL   string
	crumbURL  string
	userAgent string
	ttl       time.Duration

	// retryDelay applies to transport failures, rateLimitDelay to a 429
	// during the handshake. The handshake budget is two attempts total.
	retryDelay     time.Duration
	rateLimitDelay time.Duration

	logger *slog.Logger
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	session Session
	group   singleflight.Group
}

// AuthenticatorOptions configures an Authenticator.
type AuthenticatorOptions struct {
	SeedBaseURL    string
	Query2BaseURL  string
	UserAgent      string
	SessionTTL     time.Duration
	RetryDelay     time.Duration
	RateLimitDelay time.Duration
	Logger         *slog.Logger
}

// NewAuthenticator creates an Authenticator for the given upstream hosts.
func NewAuthenticator(opts AuthenticatorOptions) *Authenticator {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	if opts.RateLimitDelay <= 0 {
		opts.RateLimitDelay = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	// The seed endpoint answers with a redirect (or a 404) that carries
	// the Set-Cookie headers we need, so redirects must not be followed.
	client := resty.New().
		SetRedirectPolicy(resty.NoRedirectPolicy()).
		SetHeader("User-Agent", opts.UserAgent)

	return &Authenticator{
		http:           client,
		seedURL:        opts.SeedBaseURL + "/",
		crumbURL:       opts.Query2BaseURL + "/v1/test/getcrumb",
		userAgent:      opts.UserAgent,
		ttl:            opts.SessionTTL,
		retryDelay:     opts.RetryDelay,
		rateLimitDelay: opts.RateLimitDelay,
		logger:         opts.Logger,
		now:            time.Now,
		sleep:          sleepCtx,
	}
}

// EnsureSession returns a valid session, performing the two-step handshake
// if the stored one is missing or expired. The boolean is false when both
// handshake attempts fail; EnsureSession never returns an error, callers
// must check the boolean and abort the dependent fetch.
func (a *Authenticator) EnsureSession(ctx context.Context) (Session, bool) {
	a.mu.Lock()
	if a.session.Valid(a.now()) {
		sess := a.session
		a.mu.Unlock()
		return sess, true
	}
	a.mu.Unlock()

	// Single-flight: late arrivals attach to the in-flight handshake
	// instead of re-triggering it.
	v, _, _ := a.group.Do("handshake", func() (any, error) {
		// A concurrent caller may have completed the handshake between
		// our check and the group admitting us.
		a.mu.Lock()
		if a.session.Valid(a.now()) {
			sess := a.session
			a.mu.Unlock()
			return sess, nil
		}
		a.mu.Unlock()

		sess, ok := a.handshakeWithRetry(ctx)
		if !ok {
			return Session{}, nil
		}

		a.mu.Lock()
		a.session = sess
		a.mu.Unlock()
		return sess, nil
	})

	sess := v.(Session)
	return sess, sess.Valid(a.now())
}

// Invalidate clears the stored crumb so the next EnsureSession call is
// forced into a fresh handshake. Dependent fetches call this on a 401.
func (a *Authenticator) Invalidate() {
	a.mu.Lock()
	a.session.Crumb = ""
	a.session.ExpiresAt = time.Time{}
	a.mu.Unlock()
}

func (a *Authenticator) handshakeWithRetry(ctx context.Context) (Session, bool) {
	const maxAttempts = 2

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		sess, rateLimited, err := a.handshake(ctx)
		if err == nil {
			return sess, true
		}

		a.logger.Warn("session handshake failed",
			"attempt", attempt,
			"rate_limited", rateLimited,
			"error", err)

		if attempt == maxAttempts {
			break
		}

		delay := a.retryDelay
		if rateLimited {
			delay = a.rateLimitDelay
		}
		if err := a.sleep(ctx, delay); err != nil {
			break
		}
	}

	return Session{}, false
}

// handshake performs the two upstream steps: harvest the session cookie
// from the seed endpoint, then exchange it for a crumb. The second return
// value reports whether the failure was a 429.
func (a *Authenticator) handshake(ctx context.Context) (Session, bool, error) {
	resp, err := a.http.R().
		SetContext(ctx).
		Get(a.seedURL)
	if err != nil {
		return Session{}, false, NewNetworkError(err)
	}

	// The seed endpoint's status is irrelevant; only its Set-Cookie
	// headers matter.
	var parts []string
	for _, c := range resp.Cookies() {
		parts = append(parts, c.Name+"="+c.Value)
	}
	cookie := strings.Join(parts, "; ")
	if cookie == "" {
		return Session{}, false, NewEmptyError("seed endpoint returned no cookies")
	}

	resp, err = a.http.R().
		SetContext(ctx).
		SetHeader("Cookie", cookie).
		Get(a.crumbURL)
	if err != nil {
		return Session{}, false, NewNetworkError(err)
	}
	if resp.StatusCode() == 429 {
		return Session{}, true, NewRateLimitError()
	}
	if !resp.IsSuccess() {
		return Session{}, false, ClassifyHTTPError(resp.StatusCode())
	}

	crumb := strings.TrimSpace(resp.String())
	if crumb == "" {
		return Session{}, false, NewEmptyError("crumb endpoint returned an empty body")
	}

	return Session{
		Cookie:    cookie,
		Crumb:     crumb,
		ExpiresAt: a.now().Add(a.ttl),
	}, false, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
