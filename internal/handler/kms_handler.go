package handler

import (
	"context"
	"errors"

	"tron-connector/internal/handler/request"
	"tron-connector/internal/handler/response"
	"tron-connector/internal/model"
	"tron-connector/internal/service/kms"
	"tron-connector/pkg/errno"
	"tron-connector/pkg/validator"

	"github.com/gin-gonic/gin"
)

// KMSStore 由 kms.Store 实现
type KMSStore interface {
	StoreKMSTransaction(ctx context.Context, txData, currency string, signatureIDs []string) (string, error)
	Get(ctx context.Context, signatureID string) (*model.KMSTransaction, error)
}

type KMSHandler struct {
	store KMSStore
}

func NewKMSHandler(store KMSStore) *KMSHandler {
	return &KMSHandler{store: store}
}

// StoreTransaction 保存待签名交易
// @Summary 保存待 KMS 签名的交易
// @Tags KMS
// @Accept json
// @Produce json
// @Param request body request.StoreKMSTransactionRequest true "KMS Transaction"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/transactions [post]
func (h *KMSHandler) StoreTransaction(c *gin.Context) {
	var req request.StoreKMSTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	id, err := h.store.StoreKMSTransaction(c.Request.Context(), req.TxData, req.Currency, req.SignatureIDs)
	if err != nil {
		response.Error(c, errno.ErrDatabase)
		return
	}

	response.Success(c, gin.H{"id": id})
}

// GetTransaction 查询 KMS 交易
// @Summary 查询 KMS 交易
// @Tags KMS
// @Produce json
// @Param id path string true "Signature ID"
// @Success 200 {object} response.Response
// @Router /api/v1/kms/transactions/{id} [get]
func (h *KMSHandler) GetTransaction(c *gin.Context) {
	tx, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, kms.ErrKMSTransactionNotFound) {
		response.Error(c, errno.ErrKMSTransactionNotFound)
		return
	}
	if err != nil {
		response.Error(c, errno.ErrDatabase)
		return
	}

	response.Success(c, tx)
}
