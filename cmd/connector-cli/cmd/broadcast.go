package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"tron-connector/internal/service"
	"tron-connector/internal/service/kms"
	"tron-connector/internal/service/network"
	"tron-connector/pkg/config"
	"tron-connector/pkg/database"
	"tron-connector/pkg/logger"
	"tron-connector/pkg/tron"

	"github.com/spf13/cobra"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast",
	Short: "广播已签名的交易 (Online)",
	Long:  `读取已签名的交易文件 (JSON)，提交到 TRON 节点。指定 --signature-id 时同时完成数据库中的 KMS 交易。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input")
		node, _ := cmd.Flags().GetString("node")
		testnet, _ := cmd.Flags().GetBool("testnet")
		signatureID, _ := cmd.Flags().GetString("signature-id")

		if err := config.Load(".", "./config"); err != nil {
			return err
		}
		logger.Init(config.Global.App.Env)
		defer logger.Sync()

		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("读取文件失败: %w", err)
		}

		resolver := network.StaticResolver{
			Mainnet: config.Global.Tron.MainnetNodes,
			Testnet: config.Global.Tron.TestnetNodes,
		}
		if node != "" {
			resolver = network.StaticResolver{Mainnet: []string{node}, Testnet: []string{node}}
		}

		var completer service.KMSCompleter
		if signatureID != "" {
			db, err := database.ConnectPostgres(config.Global.DB.PostgresDSN(), false)
			if err != nil {
				return err
			}
			completer = kms.NewNotifier(kms.NewStore(db), nil, "")
		}

		svc := service.NewTronService(
			network.StaticSelector{Testnet: testnet},
			resolver,
			tron.NewClient(&http.Client{Timeout: config.Global.Tron.RequestTimeout}),
			completer,
			nil,
		)

		result, err := svc.Broadcast(cmd.Context(), string(data), signatureID)
		if err != nil {
			return fmt.Errorf("广播失败: %w", err)
		}

		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		if result.Failed() {
			fmt.Println("交易已广播，但 KMS 交易完成失败")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(broadcastCmd)
	broadcastCmd.Flags().StringP("input", "i", "signed.json", "已签名的交易文件")
	broadcastCmd.Flags().String("node", "", "节点地址，覆盖配置文件中的节点列表")
	broadcastCmd.Flags().Bool("testnet", false, "使用测试网节点")
	broadcastCmd.Flags().String("signature-id", "", "KMS 签名会话 ID")
}
