package cmd

import (
	"fmt"
	"strings"

	"tron-connector/pkg/tron"

	"github.com/spf13/cobra"
)

var addressCmd = &cobra.Command{
	Use:   "address [hex|base58]",
	Short: "地址格式转换 (41 开头 hex <-> T 开头 base58)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := args[0]
		if strings.HasPrefix(in, "T") {
			h, err := tron.Base58ToHex(in)
			if err != nil {
				return err
			}
			fmt.Println(h)
			return nil
		}

		b58, err := tron.HexToBase58(in)
		if err != nil {
			return err
		}
		fmt.Println(b58)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
