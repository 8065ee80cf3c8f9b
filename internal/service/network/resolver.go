package network

import (
	"context"
	"errors"
	"time"

	"tron-connector/pkg/cache"
	"tron-connector/pkg/logger"

	"go.uber.org/zap"
)

// Resolver 与 service.NodeResolver 相同
type Resolver interface {
	NodesURL(ctx context.Context, testnet bool) ([]string, error)
}

// StaticResolver 使用配置文件中的节点列表
type StaticResolver struct {
	Mainnet []string
	Testnet []string
}

func (r StaticResolver) NodesURL(ctx context.Context, testnet bool) ([]string, error) {
	if testnet {
		return r.Testnet, nil
	}
	return r.Mainnet, nil
}

// RegistryResolver 优先读取节点登记表（带缓存），登记表为空时回退到 fallback
type RegistryResolver struct {
	registry NodeRegistry
	cache    cache.Cache
	ttl      time.Duration
	fallback Resolver
}

// NewRegistryResolver cache 可以为 nil（不缓存）
func NewRegistryResolver(registry NodeRegistry, c cache.Cache, ttl time.Duration, fallback Resolver) *RegistryResolver {
	return &RegistryResolver{
		registry: registry,
		cache:    c,
		ttl:      ttl,
		fallback: fallback,
	}
}

func (r *RegistryResolver) NodesURL(ctx context.Context, testnet bool) ([]string, error) {
	key := RegistryKey(testnet)

	if r.cache != nil {
		var cached []string
		err := r.cache.Get(ctx, key, &cached)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil && !errors.Is(err, cache.ErrMiss) {
			logger.Warn("读取节点缓存失败", zap.String("key", key), zap.Error(err))
		}
	}

	urls, err := r.registry.Members(ctx, testnet)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		if r.fallback == nil {
			return nil, nil
		}
		return r.fallback.NodesURL(ctx, testnet)
	}

	if r.cache != nil && r.ttl > 0 {
		if err := r.cache.Set(ctx, key, urls, r.ttl); err != nil {
			logger.Warn("写入节点缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return urls, nil
}
