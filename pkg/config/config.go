package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig   `mapstructure:"app"`
	DB    DBConfig    `mapstructure:"db"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	Tron  TronConfig  `mapstructure:"tron"`
	KMS   KMSConfig   `mapstructure:"kms"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// TronConfig 节点相关配置
type TronConfig struct {
	Testnet        bool          `mapstructure:"testnet"`
	MainnetNodes   []string      `mapstructure:"mainnet_nodes"`
	TestnetNodes   []string      `mapstructure:"testnet_nodes"`
	NodeCacheTTL   time.Duration `mapstructure:"node_cache_ttl"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type KMSConfig struct {
	// Notify 完成通知方式: db / redis / kafka / none
	Notify string `mapstructure:"notify"`
}

var Global Config

// Init 加载配置到 Global，失败直接退出
func Init() {
	if err := Load(".", "./config"); err != nil {
		log.Fatalf("Fatal error config file: %s \n", err)
	}
	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

// Load 从给定目录查找 config.yaml 并解析到 Global
// 找不到配置文件时只使用默认值和环境变量
func Load(paths ...string) error {
	viper.Reset()
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	for _, p := range paths {
		viper.AddConfigPath(p)
	}

	// 环境变量设置, 例如 TRON_TESTNET=true
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Printf("Warning: Config file not found, using defaults and environment variables")
	}

	if err := viper.Unmarshal(&Global); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}
	return nil
}

// PostgresDSN 构造 gorm 使用的 DSN
func (c DBConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port)
}

// MigrateURL 构造 golang-migrate 使用的 URL
func (c DBConfig) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "connector_user")
	viper.SetDefault("db.password", "connector_password")
	viper.SetDefault("db.name", "connector_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.mq_type", "redis")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.topic", "kms_events_completed")

	viper.SetDefault("tron.testnet", false)
	viper.SetDefault("tron.mainnet_nodes", []string{"https://api.trongrid.io"})
	viper.SetDefault("tron.testnet_nodes", []string{"https://api.shasta.trongrid.io"})
	viper.SetDefault("tron.node_cache_ttl", time.Minute)
	viper.SetDefault("tron.request_timeout", 30*time.Second)

	viper.SetDefault("kms.notify", "db")
}
