package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "connector-cli",
	Short: "TRON 广播连接器命令行工具",
	Long: `广播已签名的 TRON 交易、查看交易摘要、转换地址格式以及维护节点登记表。
配置读取方式与 connector-server 相同 (config.yaml / 环境变量)。`,
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
