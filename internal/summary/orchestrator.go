// Package summary coordinates the whole pipeline: cache lookup, content
// extraction, provider call, normalization, and cache write-through. It is
// also the error containment boundary; nothing below it surfaces to callers
// as anything but a SummaryResult with an error message.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"pagebrief/models"
	"pagebrief/pkg/cache"
	"pagebrief/pkg/langdetect"
	"pagebrief/pkg/normalizer"
	"pagebrief/pkg/provider"
	"pagebrief/pkg/textstat"
)

// minLanguageConfidence gates the detected-language hint to providers.
const minLanguageConfidence = 0.7

// ContentExtractor resolves a locator to plain text.
type ContentExtractor interface {
	Extract(ctx context.Context, url string, mode models.ExtractMode) (string, error)
}

// ProviderGateway validates and builds the configured AI backend.
// *provider.Registry satisfies it.
type ProviderGateway interface {
	RequiresKey(id string) (bool, bool)
	Create(cfg models.ProviderConfig) (provider.Provider, error)
}

// Request describes one summarization.
type Request struct {
	Locator      string
	ForceRefresh bool
	TextOverride string // ad-hoc selection text; bypasses extraction
	Mode         models.ExtractMode
}

type Orchestrator struct {
	cache     *cache.Cache
	extractor ContentExtractor
	gateway   ProviderGateway
	cfg       models.ProviderConfig
	logger    *slog.Logger

	// flights keeps at most one summarization in flight per cache key;
	// concurrent requests for the same locator join the pending one.
	flights singleflight.Group
}

func New(c *cache.Cache, extractor ContentExtractor, gateway ProviderGateway, cfg models.ProviderConfig, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		cache:     c,
		extractor: extractor,
		gateway:   gateway,
		cfg:       cfg,
		logger:    logger,
	}
}

type outcome struct {
	result models.SummaryResult
	stats  models.SummaryStats
}

// GetSummary returns the summary for a locator, serving revisits from cache.
func (o *Orchestrator) GetSummary(ctx context.Context, req Request) models.SummaryResult {
	result, _ := o.GetSummaryWithStats(ctx, req)
	return result
}

// GetSummaryWithStats additionally reports content metrics for the run.
// Stats are zero on a cache hit since nothing was extracted.
func (o *Orchestrator) GetSummaryWithStats(ctx context.Context, req Request) (models.SummaryResult, models.SummaryStats) {
	key := o.cacheKey(req)

	if !req.ForceRefresh && req.TextOverride == "" {
		if result, ok := o.cache.Get(key); ok {
			o.logger.Debug("cache hit", "key", key.Key)
			return result, models.SummaryStats{}
		}
	}

	if req.ForceRefresh {
		// Supersede any pending flight; a forced refresh must not be
		// satisfied by a computation it was meant to replace.
		o.flights.Forget(key.Key)
	}

	v, _, shared := o.flights.Do(key.Key, func() (interface{}, error) {
		return o.summarize(ctx, key, req), nil
	})
	if shared {
		o.logger.Debug("joined in-flight summarization", "key", key.Key)
	}
	out := v.(outcome)
	return out.result, out.stats
}

func (o *Orchestrator) cacheKey(req Request) models.CacheKey {
	if req.TextOverride != "" {
		return models.TextKey(req.Locator, req.TextOverride)
	}
	return models.PageKey(req.Locator)
}

// summarize runs extraction, the provider call, and normalization. Every
// failure is folded into the returned result.
func (o *Orchestrator) summarize(ctx context.Context, key models.CacheKey, req Request) outcome {
	content := req.TextOverride
	if content == "" {
		extracted, err := o.extractor.Extract(ctx, req.Locator, req.Mode)
		if err != nil {
			o.logger.Warn("extraction failed", "locator", req.Locator, "error", err)
			return outcome{result: models.ErrorResult(err)}
		}
		content = extracted
	} else {
		content = models.Truncate(content, models.MaxContentLength)
	}

	if strings.TrimSpace(content) == "" {
		return outcome{result: models.SummaryResult{Error: "no content could be extracted from " + req.Locator}}
	}

	if needsKey, known := o.gateway.RequiresKey(o.cfg.ProviderID); known && needsKey && o.cfg.APIKey == "" {
		return outcome{result: models.SummaryResult{
			Error: fmt.Sprintf("provider %q requires an API key and none is configured", o.cfg.ProviderID),
		}}
	}

	p, err := o.gateway.Create(o.cfg)
	if err != nil {
		return outcome{result: models.ErrorResult(err)}
	}

	language, confidence := langdetect.Detect(content)
	if confidence < minLanguageConfidence {
		language = ""
	}
	words := textstat.WordCount(content)
	stats := models.SummaryStats{
		WordCount:       words,
		EstimatedTokens: textstat.EstimatedTokens(words),
		Language:        language,
		Truncated:       len(content) >= models.MaxContentLength,
	}

	o.logger.Info("summarizing",
		"locator", req.Locator,
		"provider", p.Name(),
		"words", stats.WordCount,
		"language", language,
	)

	raw, err := p.Summarize(ctx, provider.Request{Content: content, Language: language})
	if err != nil {
		o.logger.Warn("provider call failed", "provider", p.Name(), "error", err)
		return outcome{result: models.ErrorResult(err), stats: stats}
	}

	bullets, err := normalizer.Normalize(raw)
	if err != nil {
		return outcome{result: models.ErrorResult(err), stats: stats}
	}

	result := models.SummaryResult{Bullets: bullets}
	o.cache.Put(key, result)
	return outcome{result: result, stats: stats}
}
