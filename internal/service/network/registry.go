package network

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

// NodeRegistry 运维维护的节点登记表
type NodeRegistry interface {
	Members(ctx context.Context, testnet bool) ([]string, error)
}

// RedisRegistry 节点存放在 Redis Set 中:
//
//	tron:nodes:mainnet
//	tron:nodes:testnet
type RedisRegistry struct {
	client *redis.Client
}

func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

// NodeCachePrefix 节点列表在 Redis 缓存中的 key 前缀，完整 key 为 NodeCachePrefix + RegistryKey
const NodeCachePrefix = "cache:"

func RegistryKey(testnet bool) string {
	if testnet {
		return "tron:nodes:testnet"
	}
	return "tron:nodes:mainnet"
}

// Members 返回排序后的节点列表，保证"第一个节点"在多实例间一致
func (r *RedisRegistry) Members(ctx context.Context, testnet bool) ([]string, error) {
	urls, err := r.client.SMembers(ctx, RegistryKey(testnet)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(urls)
	return urls, nil
}

func (r *RedisRegistry) Add(ctx context.Context, testnet bool, urls ...string) error {
	members := make([]interface{}, len(urls))
	for i, u := range urls {
		members[i] = u
	}
	return r.client.SAdd(ctx, RegistryKey(testnet), members...).Err()
}

func (r *RedisRegistry) Remove(ctx context.Context, testnet bool, urls ...string) error {
	members := make([]interface{}, len(urls))
	for i, u := range urls {
		members[i] = u
	}
	return r.client.SRem(ctx, RegistryKey(testnet), members...).Err()
}
