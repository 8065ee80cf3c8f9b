package tron

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// 1 TRX = 10^6 sun
const sunDecimals = 6

var ErrNoContract = errors.New("transaction has no contract")

// Summary 交易的可读摘要，用于日志和命令行展示
type Summary struct {
	TxID         string          `json:"tx_id"`
	ContractType string          `json:"contract_type"`
	OwnerAddress string          `json:"owner_address,omitempty"`
	ToAddress    string          `json:"to_address,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Unit         string          `json:"unit"`
	Expiration   time.Time       `json:"expiration"`
	Signed       bool            `json:"signed"`

	rawDataHex string
}

// Summarize 解析已签名交易 JSON 并生成摘要
func Summarize(raw []byte) (*Summary, error) {
	var tx Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if len(tx.RawData.Contract) == 0 {
		return nil, ErrNoContract
	}

	c := tx.RawData.Contract[0]
	s := &Summary{
		TxID:         strings.ToLower(tx.TxID),
		ContractType: c.Type,
		Expiration:   time.UnixMilli(tx.RawData.Expiration).UTC(),
		Signed:       len(tx.Signature) > 0,
		rawDataHex:   tx.RawDataHex,
	}

	var v contractValue
	if len(c.Parameter.Value) > 0 {
		if err := json.Unmarshal(c.Parameter.Value, &v); err != nil {
			return nil, fmt.Errorf("decode contract value: %w", err)
		}
	}
	s.OwnerAddress = displayAddress(v.OwnerAddress)
	s.ToAddress = displayAddress(v.ToAddress)
	if s.ToAddress == "" {
		s.ToAddress = displayAddress(v.ContractAddress)
	}

	switch c.Type {
	case "TransferAssetContract":
		// TRC10 数量按原始精度展示
		s.Amount = decimal.NewFromInt(v.Amount)
		s.Unit = v.AssetName
	case "TriggerSmartContract":
		s.Amount = decimal.New(v.CallValue, -sunDecimals)
		s.Unit = "TRX"
	default:
		s.Amount = decimal.New(v.Amount, -sunDecimals)
		s.Unit = "TRX"
	}
	return s, nil
}

// TxIDMatches 校验 txID == sha256(raw_data_hex)
func (s *Summary) TxIDMatches() bool {
	if s.TxID == "" || s.rawDataHex == "" {
		return false
	}
	raw, err := decodeHex(s.rawDataHex)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%x", sum[:]) == s.TxID
}

// displayAddress visible=true 时地址已经是 base58，否则尝试从 hex 转换
func displayAddress(a string) string {
	if a == "" || strings.HasPrefix(a, "T") {
		return a
	}
	if b58, err := HexToBase58(a); err == nil {
		return b58
	}
	return a
}
