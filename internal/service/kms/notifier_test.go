package kms

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tron-connector/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	err      error
	txID     string
	sigID    string
	complete int
}

func (f *fakeStore) CompleteKMSTransaction(ctx context.Context, txID, signatureID string) error {
	f.complete++
	f.txID, f.sigID = txID, signatureID
	return f.err
}

type published struct {
	topic, key string
	payload    []byte
}

type fakeProducer struct {
	err  error
	msgs []published
}

func (f *fakeProducer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	f.msgs = append(f.msgs, published{topic, key, payload})
	return f.err
}

func (f *fakeProducer) Close() error { return nil }

func TestNotifier_CompletesAndPublishes(t *testing.T) {
	store := &fakeStore{}
	producer := &fakeProducer{}
	n := NewNotifier(store, producer, "")
	n.now = func() time.Time { return time.Unix(1700000000, 0) }

	require.NoError(t, n.CompleteKMSTransaction(context.Background(), "txid..", "sig-1"))

	assert.Equal(t, 1, store.complete)
	assert.Equal(t, "txid..", store.txID)
	assert.Equal(t, "sig-1", store.sigID)

	require.Len(t, producer.msgs, 1)
	msg := producer.msgs[0]
	assert.Equal(t, event.TopicKMSCompleted, msg.topic)
	assert.Equal(t, "sig-1", msg.key)

	var ev event.KMSTransactionCompletedEvent
	require.NoError(t, json.Unmarshal(msg.payload, &ev))
	assert.Equal(t, event.KMSTransactionCompletedEvent{
		SignatureID: "sig-1",
		TxID:        "txid..",
		Chain:       "TRON",
		CompletedAt: 1700000000,
	}, ev)
}

func TestNotifier_StoreErrorSkipsPublish(t *testing.T) {
	store := &fakeStore{err: ErrKMSTransactionNotFound}
	producer := &fakeProducer{}
	n := NewNotifier(store, producer, "custom_topic")

	err := n.CompleteKMSTransaction(context.Background(), "txid..", "sig-1")

	assert.ErrorIs(t, err, ErrKMSTransactionNotFound)
	assert.Empty(t, producer.msgs)
}

func TestNotifier_PublishError(t *testing.T) {
	pubErr := errors.New("broker down")
	producer := &fakeProducer{err: pubErr}
	n := NewNotifier(nil, producer, "custom_topic")

	err := n.CompleteKMSTransaction(context.Background(), "txid..", "sig-1")

	assert.ErrorIs(t, err, pubErr)
	require.Len(t, producer.msgs, 1)
	assert.Equal(t, "custom_topic", producer.msgs[0].topic)
}

func TestNotifier_StoreOnly(t *testing.T) {
	store := &fakeStore{}
	n := NewNotifier(store, nil, "")

	require.NoError(t, n.CompleteKMSTransaction(context.Background(), "txid..", "sig-1"))
	assert.Equal(t, 1, store.complete)
}
