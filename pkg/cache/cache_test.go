package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/codemend/codemend/pkg/fix"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	base := fix.Request{
		Snippet:          `element.innerHTML = x;`,
		Category:         fix.CategoryXSSUnsafeWrite,
		Engine:           "engineA",
		PreferGenerative: true,
	}

	assert.Equal(t, Key(base), Key(base))

	differentSnippet := base
	differentSnippet.Snippet = `element.innerHTML = y;`
	assert.NotEqual(t, Key(base), Key(differentSnippet))

	differentEngine := base
	differentEngine.Engine = "engineB"
	assert.NotEqual(t, Key(base), Key(differentEngine))

	differentStrategy := base
	differentStrategy.PreferGenerative = false
	assert.NotEqual(t, Key(base), Key(differentStrategy))

	assert.Contains(t, Key(base), "fix:")
}

func TestGetFixFromRedis(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewCacheWithClient(client)

	key := "fix:abc"
	raw, err := json.Marshal(cachedFix{
		Text:     `element.textContent = x;`,
		Strategy: fix.StrategyGenerative,
		Category: fix.CategoryXSSUnsafeWrite,
	})
	require.NoError(t, err)
	mock.ExpectGet(key).SetVal(string(raw))

	outcome, err := c.GetFix(context.Background(), key)
	require.NoError(t, err)

	assert.Equal(t, `element.textContent = x;`, outcome.Text)
	assert.Equal(t, fix.StrategyGenerative, outcome.AppliedStrategy)
	assert.Equal(t, fix.CategoryXSSUnsafeWrite, outcome.Request.Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFixMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewCacheWithClient(client)

	mock.ExpectGet("fix:missing").RedisNil()

	_, err := c.GetFix(context.Background(), "fix:missing")
	assert.Error(t, err)
}

func TestGetFixCorruptEntry(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewCacheWithClient(client)

	mock.ExpectGet("fix:bad").SetVal("{not json")

	_, err := c.GetFix(context.Background(), "fix:bad")
	assert.ErrorContains(t, err, "corrupt cache entry")
}

func TestSetFixPopulatesLocalCache(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewCacheWithClient(client)

	outcome := fix.Outcome{
		Request: fix.Request{
			Snippet:  `element.innerHTML = x;`,
			Category: fix.CategoryXSSUnsafeWrite,
		},
		AppliedStrategy: fix.StrategyGenerative,
		Text:            `element.textContent = x;`,
	}
	raw, err := json.Marshal(cachedFix{
		Text:     outcome.Text,
		Strategy: outcome.AppliedStrategy,
		Category: outcome.Request.Category,
	})
	require.NoError(t, err)

	key := Key(outcome.Request)
	mock.ExpectSet(key, string(raw), defaultTTL).SetVal("OK")

	require.NoError(t, c.SetFix(context.Background(), key, outcome))

	// Second read is served from the local map, no redis expectation needed.
	cached, err := c.GetFix(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, outcome.Text, cached.Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}
