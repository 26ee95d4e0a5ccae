package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/codemend/codemend/pkg/fix"
	"github.com/go-redis/redis/v8"
)

const (
	fixKeyPattern = "fix:%s"

	defaultTTL = 15 * time.Minute
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

// Cache fronts Redis with a local sync.Map. Fix results are cacheable
// because engine temperature is pinned to zero; identical requests produce
// identical accepted fixes.
type Cache struct {
	client     *redis.Client
	localCache sync.Map
	ttl        time.Duration
}

type cachedFix struct {
	Text     string       `json:"text"`
	Strategy fix.Strategy `json:"strategy"`
	Category fix.Category `json:"category"`
}

func NewCache(config Config) (*Cache, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	if config.TLS {
		options.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	client := redis.NewClient(options)

	return &Cache{
		client: client,
		ttl:    defaultTTL,
	}, nil
}

// NewCacheWithClient is used by tests to inject a mock redis client.
func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		ttl:    defaultTTL,
	}
}

// Key derives the cache key for a fix request. Every field that affects the
// result participates in the hash.
func Key(req fix.Request) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf(
		"%s|%s|%s|%t", req.Snippet, req.Category, req.Engine, req.PreferGenerative,
	)))
	return fmt.Sprintf(fixKeyPattern, hex.EncodeToString(sum[:]))
}

func (c *Cache) GetFix(ctx context.Context, key string) (*fix.Outcome, error) {
	if value, ok := c.localCache.Load(key); ok {
		if cached, ok := value.(cachedFix); ok {
			return outcomeFromCached(cached), nil
		}
	}

	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var cached cachedFix
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, fmt.Errorf("corrupt cache entry: %w", err)
	}
	c.localCache.Store(key, cached)
	return outcomeFromCached(cached), nil
}

func (c *Cache) SetFix(ctx context.Context, key string, result fix.Outcome) error {
	cached := cachedFix{
		Text:     result.Text,
		Strategy: result.AppliedStrategy,
		Category: result.Request.Category,
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, key, string(raw), c.ttl).Err(); err != nil {
		return err
	}
	c.localCache.Store(key, cached)
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func outcomeFromCached(cached cachedFix) *fix.Outcome {
	return &fix.Outcome{
		AppliedStrategy: cached.Strategy,
		Text:            cached.Text,
		Request: fix.Request{
			Category: cached.Category,
		},
	}
}
