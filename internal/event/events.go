package event

// TopicKMSCompleted KMS 交易完成事件
const TopicKMSCompleted = "kms_events_completed"

// KMSTransactionCompletedEvent 广播成功后通知 KMS 侧的事件
// Topic: kms_events_completed
type KMSTransactionCompletedEvent struct {
	SignatureID string `json:"signature_id"`
	TxID        string `json:"tx_id"`
	Chain       string `json:"chain"`
	CompletedAt int64  `json:"completed_at"` // unix 秒
}
