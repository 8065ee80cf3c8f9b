package kms

import (
	"context"
	"os"
	"testing"

	"tron-connector/internal/model"
	"tron-connector/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_Postgres 需要可用的 PostgreSQL，例如:
// KMS_TEST_DSN="host=localhost user=connector_user password=connector_password dbname=connector_db port=5432 sslmode=disable" go test ./internal/service/kms/...
func TestStore_Postgres(t *testing.T) {
	dsn := os.Getenv("KMS_TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: KMS_TEST_DSN not set")
	}
	db, err := database.ConnectPostgres(dsn, false)
	if err != nil {
		t.Skip("Skipping integration test: postgres not reachable? " + err.Error())
	}
	require.NoError(t, db.AutoMigrate(model.AllModels()...))

	ctx := context.Background()
	store := NewStore(db)
	ids := []string{uuid.NewString(), uuid.NewString()}

	id, err := store.StoreKMSTransaction(ctx, `{"txData":"..."}`, "TRX", ids)
	require.NoError(t, err)
	assert.Equal(t, ids[0], id)

	tx, err := store.Get(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, model.KMSStatusPending, tx.Status)
	assert.Equal(t, "TRX", tx.Currency)

	require.NoError(t, store.CompleteKMSTransaction(ctx, "txid..", ids[0]))
	tx, err = store.Get(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, model.KMSStatusCompleted, tx.Status)
	assert.Equal(t, "txid..", tx.TxID)

	assert.ErrorIs(t, store.CompleteKMSTransaction(ctx, "txid..", ids[0]), ErrAlreadyCompleted)
	assert.ErrorIs(t, store.CompleteKMSTransaction(ctx, "txid..", uuid.NewString()), ErrKMSTransactionNotFound)

	generated, err := store.StoreKMSTransaction(ctx, `{"txData":"..."}`, "TRX", nil)
	require.NoError(t, err)
	_, err = uuid.Parse(generated)
	assert.NoError(t, err)

	_, err = store.StoreKMSTransaction(ctx, "", "TRX", nil)
	assert.ErrorIs(t, err, ErrEmptyTransaction)
}
