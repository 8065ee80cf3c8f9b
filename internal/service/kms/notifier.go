package kms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tron-connector/internal/event"
	"tron-connector/internal/service/mq"
)

// Completer 可以把 KMS 交易标记为完成的存储
type Completer interface {
	CompleteKMSTransaction(ctx context.Context, txID, signatureID string) error
}

// Notifier 实现 service.KMSCompleter：
// 先在 store 中完成交易，再向 MQ 发布完成事件。store 或 producer 为 nil 时跳过对应步骤。
type Notifier struct {
	store    Completer
	producer mq.Producer
	topic    string
	now      func() time.Time
}

func NewNotifier(store Completer, producer mq.Producer, topic string) *Notifier {
	if topic == "" {
		topic = event.TopicKMSCompleted
	}
	return &Notifier{
		store:    store,
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

func (n *Notifier) CompleteKMSTransaction(ctx context.Context, txID, signatureID string) error {
	if n.store != nil {
		if err := n.store.CompleteKMSTransaction(ctx, txID, signatureID); err != nil {
			return err
		}
	}
	if n.producer == nil {
		return nil
	}

	payload, err := json.Marshal(event.KMSTransactionCompletedEvent{
		SignatureID: signatureID,
		TxID:        txID,
		Chain:       "TRON",
		CompletedAt: n.now().Unix(),
	})
	if err != nil {
		return err
	}
	if err := n.producer.Publish(ctx, n.topic, signatureID, payload); err != nil {
		return fmt.Errorf("publish kms completed event: %w", err)
	}
	return nil
}
