package service

import (
	"context"
	"encoding/json"

	"tron-connector/pkg/tron"
)

// NetworkSelector 判断当前部署面向测试网还是主网
type NetworkSelector interface {
	IsTestnet(ctx context.Context) (bool, error)
}

// NodeResolver 返回可用于广播的节点 base URL 列表
type NodeResolver interface {
	NodesURL(ctx context.Context, testnet bool) ([]string, error)
}

// Submitter 把交易提交到节点的 /wallet/broadcasttransaction
// 传输层错误应原样返回
type Submitter interface {
	BroadcastTransaction(ctx context.Context, baseURL string, payload json.RawMessage) (*tron.BroadcastResponse, error)
}

// KMSCompleter 通知 KMS 某个签名会话对应的交易已上链
type KMSCompleter interface {
	CompleteKMSTransaction(ctx context.Context, txID, signatureID string) error
}
