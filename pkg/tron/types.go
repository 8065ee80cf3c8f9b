package tron

import (
	"encoding/json"
	"fmt"
)

// BroadcastPath 节点广播接口
const BroadcastPath = "/wallet/broadcasttransaction"

// BroadcastResponse 是 /wallet/broadcasttransaction 的返回体
type BroadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// HTTPError 节点返回了非 2xx 状态码
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("tron node responded %s: %s", e.Status, string(e.Body))
}

// Transaction 是已签名交易的 JSON 结构，只解析需要展示的字段
type Transaction struct {
	Visible    bool     `json:"visible"`
	TxID       string   `json:"txID,omitempty"`
	Signature  []string `json:"signature,omitempty"`
	RawDataHex string   `json:"raw_data_hex"`
	RawData    struct {
		RefBlockBytes string     `json:"ref_block_bytes"`
		RefBlockHash  string     `json:"ref_block_hash"`
		Expiration    int64      `json:"expiration"`
		Timestamp     int64      `json:"timestamp"`
		FeeLimit      int64      `json:"fee_limit,omitempty"`
		Contract      []Contract `json:"contract"`
	} `json:"raw_data"`
}

type Contract struct {
	Type      string `json:"type"`
	Parameter struct {
		TypeUrl string          `json:"type_url"`
		Value   json.RawMessage `json:"value"`
	} `json:"parameter"`
}

// contractValue 覆盖 TransferContract / TransferAssetContract / TriggerSmartContract 的常用字段
type contractValue struct {
	OwnerAddress    string `json:"owner_address"`
	ToAddress       string `json:"to_address"`
	ContractAddress string `json:"contract_address"`
	Amount          int64  `json:"amount"`
	CallValue       int64  `json:"call_value"`
	AssetName       string `json:"asset_name"`
}
