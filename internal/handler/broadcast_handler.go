package handler

import (
	"context"
	"errors"
	"net/url"

	"tron-connector/internal/handler/request"
	"tron-connector/internal/handler/response"
	"tron-connector/internal/service"
	"tron-connector/pkg/errno"
	"tron-connector/pkg/logger"
	"tron-connector/pkg/tron"
	"tron-connector/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Broadcaster 由 service.TronService 实现
type Broadcaster interface {
	Broadcast(ctx context.Context, txData string, signatureID string) (service.Result, error)
}

type BroadcastHandler struct {
	svc Broadcaster
}

func NewBroadcastHandler(svc Broadcaster) *BroadcastHandler {
	return &BroadcastHandler{svc: svc}
}

// Broadcast 广播已签名交易
// @Summary 广播已签名交易
// @Description 将已签名交易提交到 TRON 节点；带 signatureId 时同时完成 KMS 交易
// @Tags Tron
// @Accept json
// @Produce json
// @Param request body request.BroadcastRequest true "Broadcast Request"
// @Success 200 {object} response.Response
// @Router /api/v1/tron/broadcast [post]
func (h *BroadcastHandler) Broadcast(c *gin.Context) {
	var req request.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
		return
	}

	result, err := h.svc.Broadcast(c.Request.Context(), req.TxData, req.SignatureID)
	if err != nil {
		logger.Error("广播失败", zap.String("signatureId", req.SignatureID), zap.Error(err))
		response.Error(c, broadcastErrno(err))
		return
	}

	response.Success(c, result)
}

// broadcastErrno 把服务层错误映射为业务错误码，提示信息保留原始错误
func broadcastErrno(err error) error {
	var rejected *service.RejectedError
	var httpErr *tron.HTTPError
	var urlErr *url.Error
	switch {
	case errors.As(err, &rejected):
		return errno.ErrBroadcastRejected.WithMessage(err.Error())
	case errors.Is(err, service.ErrInvalidTxData):
		return errno.ErrInvalidTxData.WithMessage(err.Error())
	// 节点不可达（拒绝连接、DNS、超时）由 http.Client 返回 *url.Error
	case errors.Is(err, service.ErrNoNodes), errors.As(err, &httpErr), errors.As(err, &urlErr):
		return errno.ErrNodeUnavailable.WithMessage(err.Error())
	default:
		return err
	}
}
