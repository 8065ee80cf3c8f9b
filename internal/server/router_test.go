package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"tron-connector/internal/handler"
	"tron-connector/internal/model"
	"tron-connector/internal/service"
	"tron-connector/internal/service/kms"
	"tron-connector/internal/service/network"
	"tron-connector/pkg/errno"
	"tron-connector/pkg/tron"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBroadcaster struct {
	result   service.Result
	err      error
	gotTx    string
	gotSigID string
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, txData, signatureID string) (service.Result, error) {
	f.gotTx, f.gotSigID = txData, signatureID
	return f.result, f.err
}

type fakeKMSStore struct {
	txs map[string]*model.KMSTransaction
}

func (f *fakeKMSStore) StoreKMSTransaction(ctx context.Context, txData, currency string, ids []string) (string, error) {
	for _, id := range ids {
		f.txs[id] = &model.KMSTransaction{SignatureID: id, SerializedTransaction: txData, Currency: currency, Status: model.KMSStatusPending}
	}
	return ids[0], nil
}

func (f *fakeKMSStore) Get(ctx context.Context, id string) (*model.KMSTransaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return nil, kms.ErrKMSTransactionNotFound
	}
	return tx, nil
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) envelope {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newRouter(b *fakeBroadcaster, store *fakeKMSStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handlers{Broadcast: handler.NewBroadcastHandler(b)}
	if store != nil {
		h.KMS = handler.NewKMSHandler(store)
	}
	return NewHTTPRouter(h)
}

func TestBroadcastRoute(t *testing.T) {
	tests := []struct {
		name     string
		result   service.Result
		err      error
		wantCode int
		wantMsg  string
		wantData string
	}{
		{
			name:     "success",
			result:   service.Result{TxID: "txid.."},
			wantCode: errno.OK.Code,
			wantData: `{"transactionId":"txid.."}`,
		},
		{
			name:     "completion failed",
			result:   service.Result{TxID: "txid..", Status: service.StatusCompletionFailed},
			wantCode: errno.OK.Code,
			wantData: `{"transactionId":"txid..","failed":true}`,
		},
		{
			name:     "rejected",
			err:      &service.RejectedError{Message: "response message.."},
			wantCode: errno.ErrBroadcastRejected.Code,
			wantMsg:  "Broadcast failed due to response message..",
		},
		{
			name:     "node http error",
			err:      &tron.HTTPError{StatusCode: 500, Status: "500 Internal Server Error"},
			wantCode: errno.ErrNodeUnavailable.Code,
		},
		{
			name: "node unreachable",
			err: &url.Error{
				Op:  "Post",
				URL: "http://127.0.0.1:1/wallet/broadcasttransaction",
				Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			},
			wantCode: errno.ErrNodeUnavailable.Code,
		},
		{
			name:     "no nodes",
			err:      service.ErrNoNodes,
			wantCode: errno.ErrNodeUnavailable.Code,
		},
		{
			name:     "selector error",
			err:      errors.New("connection error.."),
			wantCode: errno.InternalServerError.Code,
			wantMsg:  "connection error..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBroadcaster{result: tt.result, err: tt.err}
			r := newRouter(b, nil)

			env := do(t, r, http.MethodPost, "/api/v1/tron/broadcast", map[string]string{
				"txData":      `{"data":"tx data.."}`,
				"signatureId": "signature id..",
			})

			assert.Equal(t, tt.wantCode, env.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Msg)
			}
			if tt.wantData != "" {
				assert.JSONEq(t, tt.wantData, string(env.Data))
			}
			assert.Equal(t, `{"data":"tx data.."}`, b.gotTx)
			assert.Equal(t, "signature id..", b.gotSigID)
		})
	}
}

func TestBroadcastRoute_BindError(t *testing.T) {
	b := &fakeBroadcaster{}
	r := newRouter(b, nil)

	env := do(t, r, http.MethodPost, "/api/v1/tron/broadcast", map[string]string{"txData": "{not json"})

	assert.Equal(t, errno.ErrBind.Code, env.Code)
	assert.Empty(t, b.gotTx)
}

func TestKMSRoutes(t *testing.T) {
	store := &fakeKMSStore{txs: map[string]*model.KMSTransaction{}}
	r := newRouter(&fakeBroadcaster{}, store)

	env := do(t, r, http.MethodPost, "/api/v1/kms/transactions", map[string]interface{}{
		"txData":       `{"raw_data":{}}`,
		"currency":     "TRX",
		"signatureIds": []string{"sig-1"},
	})
	require.Equal(t, errno.OK.Code, env.Code)
	assert.JSONEq(t, `{"id":"sig-1"}`, string(env.Data))

	env = do(t, r, http.MethodGet, "/api/v1/kms/transactions/sig-1", nil)
	require.Equal(t, errno.OK.Code, env.Code)
	var tx model.KMSTransaction
	require.NoError(t, json.Unmarshal(env.Data, &tx))
	assert.Equal(t, "sig-1", tx.SignatureID)
	assert.Equal(t, model.KMSStatusPending, tx.Status)

	env = do(t, r, http.MethodGet, "/api/v1/kms/transactions/missing", nil)
	assert.Equal(t, errno.ErrKMSTransactionNotFound.Code, env.Code)
}

func TestBroadcastRoute_NodeDown(t *testing.T) {
	// 关闭后的地址不再监听，请求会被拒绝连接
	node := httptest.NewServer(http.NotFoundHandler())
	nodeURL := node.URL
	node.Close()

	svc := service.NewTronService(
		network.StaticSelector{Testnet: true},
		network.StaticResolver{Testnet: []string{nodeURL}},
		tron.NewClient(&http.Client{Timeout: 2 * time.Second}),
		nil,
		zap.NewNop(),
	)
	gin.SetMode(gin.TestMode)
	r := NewHTTPRouter(Handlers{Broadcast: handler.NewBroadcastHandler(svc)})

	env := do(t, r, http.MethodPost, "/api/v1/tron/broadcast", map[string]string{
		"txData": `{"data":"tx data.."}`,
	})

	assert.Equal(t, errno.ErrNodeUnavailable.Code, env.Code)
	assert.Contains(t, env.Msg, tron.BroadcastPath)
}

func TestHealth(t *testing.T) {
	r := newRouter(&fakeBroadcaster{}, nil)

	env := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, errno.OK.Code, env.Code)
	assert.Contains(t, string(env.Data), `"UP"`)
}
