package cmd

import (
	"context"
	"fmt"

	"tron-connector/internal/service/network"
	"tron-connector/pkg/cache"
	"tron-connector/pkg/config"
	"tron-connector/pkg/database"

	"github.com/spf13/cobra"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "维护 Redis 中的节点登记表",
}

var nodesListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出登记的节点",
	RunE: func(cmd *cobra.Command, args []string) error {
		testnet, _ := cmd.Flags().GetBool("testnet")
		reg, _, closeFn, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		urls, err := reg.Members(cmd.Context(), testnet)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			fmt.Println("登记表为空，将使用配置文件中的节点")
		}
		for _, u := range urls {
			fmt.Println(u)
		}
		return nil
	},
}

var nodesAddCmd = &cobra.Command{
	Use:   "add [url...]",
	Short: "登记节点",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testnet, _ := cmd.Flags().GetBool("testnet")
		reg, nodeCache, closeFn, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := updateNodes(cmd.Context(), reg.Add, nodeCache, testnet, args); err != nil {
			return err
		}
		fmt.Printf("已登记 %d 个节点到 %s\n", len(args), network.RegistryKey(testnet))
		return nil
	},
}

var nodesRemoveCmd = &cobra.Command{
	Use:   "remove [url...]",
	Short: "移除节点",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testnet, _ := cmd.Flags().GetBool("testnet")
		reg, nodeCache, closeFn, err := openRegistry(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		return updateNodes(cmd.Context(), reg.Remove, nodeCache, testnet, args)
	},
}

// updateNodes 修改登记表后删除 Redis 中缓存的节点列表。
// 服务进程内的 L1 缓存只能等 node_cache_ttl/2 过期。
func updateNodes(ctx context.Context, apply func(context.Context, bool, ...string) error, nodeCache cache.Cache, testnet bool, urls []string) error {
	if err := apply(ctx, testnet, urls...); err != nil {
		return err
	}
	if err := nodeCache.Delete(ctx, network.RegistryKey(testnet)); err != nil {
		return fmt.Errorf("清除节点缓存失败: %w", err)
	}
	return nil
}

func openRegistry(cmd *cobra.Command) (*network.RedisRegistry, cache.Cache, func(), error) {
	if err := config.Load(".", "./config"); err != nil {
		return nil, nil, nil, err
	}
	rdb, err := database.ConnectRedis(cmd.Context(), config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	return network.NewRedisRegistry(rdb), cache.NewRedisCache(rdb, network.NodeCachePrefix), func() { _ = rdb.Close() }, nil
}

func init() {
	rootCmd.AddCommand(nodesCmd)
	nodesCmd.AddCommand(nodesListCmd, nodesAddCmd, nodesRemoveCmd)
	nodesCmd.PersistentFlags().Bool("testnet", false, "操作测试网登记表")
}
