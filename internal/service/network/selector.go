package network

import (
	"context"

	"github.com/spf13/viper"
)

// ConfigSelector 每次调用都从 viper 读取 tron.testnet，
// 环境变量 TRON_TESTNET 可以在运行时覆盖配置文件
type ConfigSelector struct {
	v *viper.Viper
}

// NewConfigSelector v 为 nil 时使用全局 viper
func NewConfigSelector(v *viper.Viper) *ConfigSelector {
	if v == nil {
		v = viper.GetViper()
	}
	return &ConfigSelector{v: v}
}

func (s *ConfigSelector) IsTestnet(ctx context.Context) (bool, error) {
	return s.v.GetBool("tron.testnet"), nil
}

// StaticSelector 固定网络，命令行工具使用
type StaticSelector struct {
	Testnet bool
}

func (s StaticSelector) IsTestnet(ctx context.Context) (bool, error) {
	return s.Testnet, nil
}
