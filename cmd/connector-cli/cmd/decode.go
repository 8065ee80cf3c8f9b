package cmd

import (
	"fmt"
	"os"
	"time"

	"tron-connector/pkg/tron"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "查看已签名交易的摘要 (Offline)",
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile, _ := cmd.Flags().GetString("input")

		data, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("读取文件失败: %w", err)
		}

		s, err := tron.Summarize(data)
		if err != nil {
			return err
		}

		fmt.Printf("TxID:       %s\n", s.TxID)
		fmt.Printf("TxID 校验:  %v\n", s.TxIDMatches())
		fmt.Printf("合约类型:   %s\n", s.ContractType)
		fmt.Printf("From:       %s\n", s.OwnerAddress)
		fmt.Printf("To:         %s\n", s.ToAddress)
		fmt.Printf("金额:       %s %s\n", s.Amount.StringFixed(6), s.Unit)
		fmt.Printf("已签名:     %v\n", s.Signed)
		fmt.Printf("过期时间:   %s\n", s.Expiration.Format(time.RFC3339))
		if time.Now().After(s.Expiration) {
			fmt.Println("⚠️  交易已过期，广播会被节点拒绝")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("input", "i", "signed.json", "已签名的交易文件")
}
