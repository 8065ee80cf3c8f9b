package request

// BroadcastRequest 广播已签名交易
type BroadcastRequest struct {
	TxData      string `json:"txData" binding:"required,json"`
	SignatureID string `json:"signatureId" binding:"omitempty,max=64"`
}

// StoreKMSTransactionRequest 保存待 KMS 签名的交易
type StoreKMSTransactionRequest struct {
	TxData       string   `json:"txData" binding:"required"`
	Currency     string   `json:"currency" binding:"required,max=20"`
	SignatureIDs []string `json:"signatureIds" binding:"omitempty,dive,max=64"`
}
