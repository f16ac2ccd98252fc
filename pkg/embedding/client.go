package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"talentbridge-ai/internal/pkg/logger"
)

const DefaultCacheSize = 1000

// Client wraps a Provider with a content-hash keyed cache so identical text
// is only embedded once. A nil vector means "skip the semantic operation":
// empty input and provider failures both come back as nil, never as an
// error, and callers degrade gracefully.
type Client struct {
	provider Provider
	timeout  time.Duration
	log      logger.ILogger

	mu      sync.Mutex
	cache   map[string][]float32
	order   []string // insertion order, oldest first
	maxSize int
}

func NewClient(provider Provider, maxSize int, timeout time.Duration, log logger.ILogger) *Client {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Client{
		provider: provider,
		timeout:  timeout,
		log:      log,
		cache:    make(map[string][]float32),
		maxSize:  maxSize,
	}
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// GetEmbedding returns the vector for text, or nil when the input is
// empty/whitespace or the provider call fails.
func (c *Client) GetEmbedding(ctx context.Context, text string) []float32 {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	key := cacheKey(text)

	c.mu.Lock()
	if vec, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return vec
	}
	c.mu.Unlock()

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	vec, err := c.provider.Embed(callCtx, text)
	if err != nil || len(vec) == 0 {
		details := map[string]interface{}{"text_len": len(text)}
		if err != nil {
			details["error"] = err.Error()
		}
		c.log.Warn("EMBEDDING", "Provider call failed, degrading without vector", details)
		return nil
	}

	c.put(key, vec)
	return vec
}

// GetEmbeddings embeds a batch, one result slot per input. Repeated text
// within the batch is embedded once; failed slots are nil.
func (c *Client) GetEmbeddings(ctx context.Context, texts []string) [][]float32 {
	results := make([][]float32, len(texts))
	seen := make(map[string]int)

	for i, text := range texts {
		key := cacheKey(text)
		if prev, ok := seen[key]; ok {
			results[i] = results[prev]
			continue
		}
		results[i] = c.GetEmbedding(ctx, text)
		seen[key] = i
	}
	return results
}

// CacheLen reports the number of cached vectors.
func (c *Client) CacheLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *Client) put(key string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[key]; ok {
		return
	}

	// When full, drop the oldest half in one batch, at least one entry.
	if len(c.cache) >= c.maxSize {
		half := len(c.order) / 2
		if half == 0 {
			half = 1
		}
		for _, old := range c.order[:half] {
			delete(c.cache, old)
		}
		c.order = append([]string(nil), c.order[half:]...)
	}

	c.cache[key] = vec
	c.order = append(c.order, key)
}
