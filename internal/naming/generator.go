// Package naming gives merged creatures a cosmetic display name. A remote
// chat-completion model is tried first under a short deadline; any failure
// falls back to a predefined table so naming never holds up gameplay.
package naming

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/metrics"
)

// Generator names creatures
type Generator interface {
	// Generate returns a fresh name for a creature kind
	Generate(ctx context.Context, family string, level int, lang string) string

	// NameFor returns the name of a specific creature, generating it on first use
	NameFor(ctx context.Context, creatureID, family string, level int, lang string) string
}

// Option configures a generator
type Option func(*generator)

// WithTimeout bounds each remote call
func WithTimeout(d time.Duration) Option {
	return func(g *generator) { g.timeout = d }
}

// WithCache sizes the per-creature name cache
func WithCache(size int, ttl time.Duration) Option {
	return func(g *generator) { g.cache = expirable.NewLRU[string, string](size, nil, ttl) }
}

// WithPicker replaces the random fallback choice
func WithPicker(pick func(n int) int) Option {
	return func(g *generator) { g.pick = pick }
}

type generator struct {
	completer Completer
	timeout   time.Duration
	cache     *expirable.LRU[string, string]
	pick      func(n int) int
}

// NewGenerator creates a generator. A nil completer uses only the fallback table.
func NewGenerator(completer Completer, opts ...Option) Generator {
	g := &generator{
		completer: completer,
		timeout:   DefaultTimeout,
		cache:     expirable.NewLRU[string, string](DefaultCacheSize, nil, DefaultCacheTTL),
		pick:      rand.IntN,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *generator) Generate(ctx context.Context, family string, level int, lang string) string {
	if g.completer != nil {
		name, err := g.remote(ctx, family, level, lang)
		if err == nil {
			metrics.NamingRequests.WithLabelValues(metrics.OutcomeGenerated).Inc()
			return name
		}
		logger.FromContext(ctx).Warn(LogMsgGenerationFailed, "family", family, "level", level, "error", err)
	}
	metrics.NamingRequests.WithLabelValues(metrics.OutcomeFallback).Inc()
	return FallbackName(family, level, g.pick)
}

func (g *generator) NameFor(ctx context.Context, creatureID, family string, level int, lang string) string {
	if name, ok := g.cache.Get(creatureID); ok {
		metrics.NamingRequests.WithLabelValues(metrics.OutcomeCached).Inc()
		return name
	}
	name := g.Generate(ctx, family, level, lang)
	g.cache.Add(creatureID, name)
	return name
}

func (g *generator) remote(ctx context.Context, family string, level int, lang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.completer.Complete(ctx, Prompt(family, level, lang))
	if err != nil {
		return "", err
	}
	name, ok := CleanName(raw)
	if !ok {
		logger.FromContext(ctx).Debug(LogMsgNameRejected, "raw", raw)
		return "", fmt.Errorf("name %q outside %d-%d characters", raw, MinNameLength, MaxNameLength)
	}
	return name, nil
}

// Prompt builds the chat prompt for one creature
func Prompt(family string, level int, lang string) string {
	language := "English"
	if strings.HasPrefix(lang, "ru") {
		language = "Russian"
	}
	return fmt.Sprintf(
		"Generate ONE creative, cute fantasy name (2-3 words, no explanation) for a %s level %d %s creature in a magical forest game. Language: %s. Just the name, nothing else.",
		levelAdjective(level), level, describeFamily(family), language,
	)
}

// CleanName strips whitespace and quotes and checks the length in characters
func CleanName(raw string) (string, bool) {
	name := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	n := len([]rune(name))
	return name, n >= MinNameLength && n <= MaxNameLength
}
