package service

import (
	"encoding/json"
	"errors"
)

var (
	// ErrNoNodes 节点列表为空
	ErrNoNodes = errors.New("no tron node url available")
	// ErrInvalidTxData txData 不是合法 JSON
	ErrInvalidTxData = errors.New("transaction data is not valid json")
	// ErrKMSNotConfigured 传了 signatureId 但没有配置 KMSCompleter
	ErrKMSNotConfigured = errors.New("kms completer not configured")
)

// RejectedError 节点接受了请求但 result=false
type RejectedError struct {
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	return "Broadcast failed due to " + e.Message
}

// ResultStatus 区分完全成功和"已上链但 KMS 完成通知失败"
type ResultStatus int

const (
	StatusBroadcast ResultStatus = iota
	StatusCompletionFailed
)

// Result 广播结果。JSON 形式为 {"transactionId": ..., "failed": true}，
// failed 只在 StatusCompletionFailed 时出现。
type Result struct {
	TxID   string
	Status ResultStatus
}

// Failed 交易已广播但 KMS 完成通知失败
func (r Result) Failed() bool {
	return r.Status == StatusCompletionFailed
}

type resultJSON struct {
	TransactionID *string `json:"transactionId"`
	Failed        bool    `json:"failed,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Failed: r.Failed()}
	if r.TxID != "" {
		txID := r.TxID
		out.TransactionID = &txID
	}
	return json.Marshal(out)
}
