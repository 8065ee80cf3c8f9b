package network

import (
	"context"
	"os"
	"testing"

	"tron-connector/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// redisTestDB 与业务数据隔离，测试会清空登记表 key
const redisTestDB = 15

// TestRedisRegistry 需要可用的 Redis，例如:
// REDIS_TEST_ADDR=localhost:6379 go test ./internal/service/network/...
func TestRedisRegistry(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Skipping integration test: REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	rdb, err := database.ConnectRedis(ctx, addr, "", redisTestDB)
	if err != nil {
		t.Skip("Skipping integration test: redis not reachable? " + err.Error())
	}
	defer rdb.Close()

	cleanup := func() { rdb.Del(ctx, RegistryKey(true), RegistryKey(false)) }
	cleanup()
	defer cleanup()

	reg := NewRedisRegistry(rdb)

	urls, err := reg.Members(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, urls)

	// 插入顺序与返回顺序无关，始终按字典序
	require.NoError(t, reg.Add(ctx, true, "https://c.node", "https://a.node", "https://b.node"))
	require.NoError(t, reg.Add(ctx, true, "https://a.node"))
	for i := 0; i < 5; i++ {
		urls, err = reg.Members(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.node", "https://b.node", "https://c.node"}, urls)
	}

	require.NoError(t, reg.Remove(ctx, true, "https://a.node"))
	urls, err = reg.Members(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b.node", "https://c.node"}, urls)

	// 主网与测试网互不影响
	urls, err = reg.Members(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, urls)

	resolver := NewRegistryResolver(reg, nil, 0, StaticResolver{Testnet: []string{"https://fallback.node"}})
	urls, err = resolver.NodesURL(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "https://b.node", urls[0])
}
