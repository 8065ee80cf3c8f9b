package network

import (
	"context"
	"errors"
	"testing"
	"time"

	"tron-connector/pkg/cache"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	nodes map[bool][]string
	err   error
	calls int
}

func (f *fakeRegistry) Members(ctx context.Context, testnet bool) ([]string, error) {
	f.calls++
	return f.nodes[testnet], f.err
}

var static = StaticResolver{
	Mainnet: []string{"https://api.trongrid.io"},
	Testnet: []string{"https://api.shasta.trongrid.io"},
}

func TestStaticResolver(t *testing.T) {
	ctx := context.Background()

	nodes, err := static.NodesURL(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.shasta.trongrid.io"}, nodes)

	nodes, err = static.NodesURL(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.trongrid.io"}, nodes)
}

func TestRegistryResolver_CachesRegistry(t *testing.T) {
	ctx := context.Background()
	reg := &fakeRegistry{nodes: map[bool][]string{true: {"http://node-a:8090", "http://node-b:8090"}}}
	r := NewRegistryResolver(reg, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, static)

	for i := 0; i < 3; i++ {
		nodes, err := r.NodesURL(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"http://node-a:8090", "http://node-b:8090"}, nodes)
	}
	assert.Equal(t, 1, reg.calls)
}

func TestRegistryResolver_FallbackWhenEmpty(t *testing.T) {
	ctx := context.Background()
	reg := &fakeRegistry{nodes: map[bool][]string{}}
	r := NewRegistryResolver(reg, nil, time.Minute, static)

	nodes, err := r.NodesURL(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://api.trongrid.io"}, nodes)
}

func TestRegistryResolver_RegistryError(t *testing.T) {
	regErr := errors.New("redis down")
	reg := &fakeRegistry{err: regErr}
	r := NewRegistryResolver(reg, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, static)

	_, err := r.NodesURL(context.Background(), true)
	assert.Same(t, regErr, err)
}

func TestConfigSelector(t *testing.T) {
	v := viper.New()
	s := NewConfigSelector(v)

	testnet, err := s.IsTestnet(context.Background())
	require.NoError(t, err)
	assert.False(t, testnet)

	v.Set("tron.testnet", true)
	testnet, err = s.IsTestnet(context.Background())
	require.NoError(t, err)
	assert.True(t, testnet)
}

func TestRegistryKey(t *testing.T) {
	assert.Equal(t, "tron:nodes:testnet", RegistryKey(true))
	assert.Equal(t, "tron:nodes:mainnet", RegistryKey(false))
}
