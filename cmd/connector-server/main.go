package main

import (
	"context"
	"net/http"

	"tron-connector/internal/handler"
	"tron-connector/internal/model"
	"tron-connector/internal/server"
	"tron-connector/internal/service"
	"tron-connector/internal/service/kms"
	"tron-connector/internal/service/mq"
	"tron-connector/internal/service/network"
	"tron-connector/pkg/cache"
	"tron-connector/pkg/config"
	"tron-connector/pkg/database"
	"tron-connector/pkg/logger"
	"tron-connector/pkg/tron"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// @title TRON Connector API
// @version 1.0
// @description Broadcast signed TRON transactions and complete KMS signing sessions
// @BasePath /
func main() {
	// 0. 配置与日志
	config.Init()
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	cfg := config.Global
	ctx := context.Background()

	// 1. 数据库 (KMS 交易存储)
	var db *gorm.DB
	if cfg.KMS.Notify != "none" {
		var err error
		db, err = database.ConnectPostgres(cfg.DB.PostgresDSN(), cfg.App.Env == "development")
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}
		if cfg.App.Env == "development" {
			logger.Info("开发环境: 自动迁移 Schema (GORM AutoMigrate)...")
			if err := db.AutoMigrate(model.AllModels()...); err != nil {
				logger.Fatal("数据库自动迁移失败", zap.Error(err))
			}
		} else {
			logger.Info("生产环境: 跳过 AutoMigrate，请使用 migrate 工具管理 Schema")
		}
	}

	// 2. Redis (节点登记表 + 缓存 + Redis Stream)
	rdb, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Redis 不可用，节点列表仅使用配置文件", zap.Error(err))
		rdb = nil
	}

	// 3. 网络选择与节点解析
	selector := network.NewConfigSelector(nil)
	static := network.StaticResolver{
		Mainnet: cfg.Tron.MainnetNodes,
		Testnet: cfg.Tron.TestnetNodes,
	}
	var resolver service.NodeResolver = static
	if rdb != nil {
		nodeCache := cache.NewMultiLevelCache(
			cache.NewMemoryCache(cfg.Tron.NodeCacheTTL, 2*cfg.Tron.NodeCacheTTL),
			cache.NewRedisCache(rdb, network.NodeCachePrefix),
			cfg.Tron.NodeCacheTTL/2,
		)
		resolver = network.NewRegistryResolver(network.NewRedisRegistry(rdb), nodeCache, cfg.Tron.NodeCacheTTL, static)
	}

	// 4. KMS 完成通知
	var store *kms.Store
	var completer service.KMSCompleter
	producer := newProducer(cfg, rdb)
	if producer != nil {
		defer producer.Close()
	}
	if db != nil {
		store = kms.NewStore(db)
		completer = kms.NewNotifier(store, producer, cfg.Kafka.Topic)
	}

	// 5. 广播服务
	client := tron.NewClient(&http.Client{Timeout: cfg.Tron.RequestTimeout})
	tronService := service.NewTronService(selector, resolver, client, completer, nil)

	// 6. HTTP
	handlers := server.Handlers{Broadcast: handler.NewBroadcastHandler(tronService)}
	if store != nil {
		handlers.KMS = handler.NewKMSHandler(store)
	}
	app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, server.NewHTTPRouter(handlers))
	app.Run()

	// 7. 退出后资源清理
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("系统已退出")
}

// newProducer 按 kms.notify 选择完成事件的发布方式
func newProducer(cfg config.Config, rdb *redis.Client) mq.Producer {
	switch cfg.KMS.Notify {
	case "kafka":
		logger.Info("KMS 完成事件: Kafka", zap.Strings("brokers", cfg.Kafka.Brokers))
		return mq.NewKafkaProducer(cfg.Kafka.Brokers)
	case "redis":
		if rdb == nil {
			logger.Fatal("kms.notify=redis 但 Redis 不可用")
		}
		logger.Info("KMS 完成事件: Redis Stream")
		return mq.NewRedisProducer(rdb, 100000)
	default:
		return nil
	}
}
