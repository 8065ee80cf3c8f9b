package model

import "time"

// KMS 交易状态
const (
	KMSStatusPending   = "pending"
	KMSStatusCompleted = "completed"
)

// KMSTransaction 等待 KMS 签名的交易
type KMSTransaction struct {
	ID                    uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	SignatureID           string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"id"`
	SerializedTransaction string    `gorm:"type:text;not null" json:"serializedTransaction"`
	Chain                 string    `gorm:"type:varchar(20);not null;default:'TRON'" json:"chain"`
	Currency              string    `gorm:"type:varchar(20);not null" json:"currency"`
	Status                string    `gorm:"type:varchar(20);not null;index" json:"status"` // pending, completed
	TxID                  string    `gorm:"type:varchar(128)" json:"txId,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (KMSTransaction) TableName() string {
	return "kms_transactions"
}
