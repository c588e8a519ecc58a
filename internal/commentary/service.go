// Package commentary generates the LLM market briefing and memoizes full
// outputs so identical briefings are not regenerated within the cache
// window. Generation failure is the one error in the acquisition core that
// propagates to the caller: there is no sensible empty fallback for a
// missing briefing.
package commentary

import (
	"context"
	"io"
	"log/slog"
	"time"

	"marketterm/internal/cache"
	"marketterm/internal/yahoo"
)

// Generator produces a commentary text stream from a prompt. The
// production implementation talks to an OpenAI-compatible chat model; tests
// substitute a scripted one.
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Stream, error)
}

// Service fronts a Generator with a TTL cache keyed by market segment and
// news presence: two logical entries per segment, since a briefing written
// with headlines reads differently from one written without.
type Service struct {
	gen    Generator
	texts  *cache.TTL[string]
	logger *slog.Logger
}

// NewService creates a commentary Service with the given full-text TTL.
func NewService(gen Generator, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gen:    gen,
		texts:  cache.New[string](ttl),
		logger: logger,
	}
}

func cacheKey(marketName string, withNews bool) string {
	if withNews {
		return marketName + ":with-news"
	}
	return marketName
}

// Generate returns a stream of commentary text fragments for the given
// market snapshot. A cache hit replays the stored full text as a single
// fragment. On a miss the underlying generator runs, its fragments are
// forwarded as they arrive, and the assembled text is cached only on
// success.
func (s *Service) Generate(ctx context.Context, summary MarketSummary, news map[string][]yahoo.NewsItem) (*Stream, error) {
	key := cacheKey(summary.MarketName, hasNews(news))

	if text, ok := s.texts.Get(key); ok {
		s.logger.Debug("commentary cache hit", "key", key)
		out := newStream(1)
		out.send(text)
		out.close()
		return out, nil
	}

	prompt := buildPrompt(summary, news)
	upstream, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	out := newStream(16)
	go func() {
		var full string
		for {
			text, err := upstream.Recv()
			if err != nil {
				if err == io.EOF {
					if full != "" {
						s.texts.Set(key, full)
					}
					out.close()
				} else {
					s.logger.Warn("commentary generation failed", "key", key, "error", err)
					out.fail(err)
				}
				return
			}
			full += text
			out.send(text)
		}
	}()

	return out, nil
}

// Clear wipes the commentary cache.
func (s *Service) Clear() {
	s.texts.Clear()
}
