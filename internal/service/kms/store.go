package kms

import (
	"context"
	"errors"
	"fmt"

	"tron-connector/internal/model"
	"tron-connector/pkg/monitor"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrKMSTransactionNotFound = errors.New("kms transaction not found")
	ErrAlreadyCompleted       = errors.New("kms transaction already completed")
	ErrEmptyTransaction       = errors.New("serialized transaction is empty")
)

// Store 保存等待 KMS 签名的交易
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// StoreKMSTransaction 为每个 signatureId 写入一条 pending 记录，返回第一个 id。
// 未提供 signatureId 时生成一个 uuid。
func (s *Store) StoreKMSTransaction(ctx context.Context, txData, currency string, signatureIDs []string) (string, error) {
	if txData == "" {
		return "", ErrEmptyTransaction
	}
	if len(signatureIDs) == 0 {
		signatureIDs = []string{uuid.NewString()}
	}

	rows := make([]model.KMSTransaction, 0, len(signatureIDs))
	for _, id := range signatureIDs {
		rows = append(rows, model.KMSTransaction{
			SignatureID:           id,
			SerializedTransaction: txData,
			Chain:                 "TRON",
			Currency:              currency,
			Status:                model.KMSStatusPending,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	})
	if err != nil {
		return "", fmt.Errorf("store kms transaction: %w", err)
	}

	monitor.ObserveKMSStored(currency, len(rows))
	return signatureIDs[0], nil
}

// Get 按 signatureId 查询
func (s *Store) Get(ctx context.Context, signatureID string) (*model.KMSTransaction, error) {
	var tx model.KMSTransaction
	err := s.db.WithContext(ctx).Where("signature_id = ?", signatureID).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKMSTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// CompleteKMSTransaction pending -> completed，并记录链上 txId
func (s *Store) CompleteKMSTransaction(ctx context.Context, txID, signatureID string) error {
	res := s.db.WithContext(ctx).
		Model(&model.KMSTransaction{}).
		Where("signature_id = ? AND status = ?", signatureID, model.KMSStatusPending).
		Updates(map[string]interface{}{
			"status": model.KMSStatusCompleted,
			"tx_id":  txID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// 没有更新到记录：区分不存在和已完成
	if _, err := s.Get(ctx, signatureID); err != nil {
		return err
	}
	return ErrAlreadyCompleted
}
