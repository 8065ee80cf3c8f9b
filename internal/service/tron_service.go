package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tron-connector/pkg/logger"
	"tron-connector/pkg/monitor"
	"tron-connector/pkg/tron"

	"go.uber.org/zap"
)

// TronService 负责把已签名交易广播到 TRON 节点，并在需要时通知 KMS 完成签名会话
type TronService struct {
	selector  NetworkSelector
	resolver  NodeResolver
	submitter Submitter
	completer KMSCompleter
	log       *zap.Logger
}

// NewTronService 组装广播服务。completer 可以为 nil（此时带 signatureId 的广播会标记 failed）。
// log 为 nil 时使用全局 logger。
func NewTronService(selector NetworkSelector, resolver NodeResolver, submitter Submitter, completer KMSCompleter, log *zap.Logger) *TronService {
	if log == nil {
		log = logger.Named("tron")
	}
	return &TronService{
		selector:  selector,
		resolver:  resolver,
		submitter: submitter,
		completer: completer,
		log:       log,
	}
}

// Broadcast 广播交易。
//
// 网络判断、节点解析、提交节点的错误都原样返回；节点返回 result=false 时返回 *RejectedError。
// 广播成功后 KMS 完成通知失败只记录日志，结果标记为 StatusCompletionFailed。
func (s *TronService) Broadcast(ctx context.Context, txData string, signatureID string) (Result, error) {
	started := time.Now()
	network := "unknown"
	status := monitor.StatusError
	defer func() {
		monitor.ObserveBroadcast(network, status, started)
	}()

	// 1. 测试网还是主网
	testnet, err := s.selector.IsTestnet(ctx)
	if err != nil {
		return Result{}, err
	}
	network = networkName(testnet)

	// 2. 取第一个节点
	nodes, err := s.resolver.NodesURL(ctx, testnet)
	if err != nil {
		return Result{}, err
	}
	if len(nodes) == 0 {
		return Result{}, ErrNoNodes
	}
	nodeURL := nodes[0]

	// 3. 解析并提交
	var payload json.RawMessage
	if err := json.Unmarshal([]byte(txData), &payload); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidTxData, err)
	}
	s.logSummary(payload, nodeURL, network)

	resp, err := s.submitter.BroadcastTransaction(ctx, nodeURL, payload)
	if err != nil {
		return Result{}, err
	}
	if !resp.Result {
		status = monitor.StatusRejected
		return Result{}, &RejectedError{Code: resp.Code, Message: resp.Message}
	}

	result := Result{TxID: resp.TxID}
	if signatureID == "" {
		status = monitor.StatusSuccess
		return result, nil
	}

	// 4. 通知 KMS，失败不影响广播结果
	if err := s.completeKMSTransaction(ctx, resp.TxID, signatureID); err != nil {
		s.log.Error("KMS 交易完成通知失败",
			zap.String("txId", resp.TxID),
			zap.String("signatureId", signatureID),
			zap.Error(err))
		status = monitor.StatusCompletionFailed
		result.Status = StatusCompletionFailed
		return result, nil
	}

	status = monitor.StatusSuccess
	return result, nil
}

func (s *TronService) completeKMSTransaction(ctx context.Context, txID, signatureID string) error {
	if s.completer == nil {
		return ErrKMSNotConfigured
	}
	return s.completer.CompleteKMSTransaction(ctx, txID, signatureID)
}

// logSummary 能解析出摘要时打一条 debug 日志，解析失败忽略
func (s *TronService) logSummary(payload json.RawMessage, nodeURL, network string) {
	if !s.log.Core().Enabled(zap.DebugLevel) {
		return
	}
	sum, err := tron.Summarize(payload)
	if err != nil {
		return
	}
	s.log.Debug("广播交易",
		zap.String("network", network),
		zap.String("node", nodeURL),
		zap.String("txID", sum.TxID),
		zap.Bool("txIdMatches", sum.TxIDMatches()),
		zap.String("contract", sum.ContractType),
		zap.String("from", sum.OwnerAddress),
		zap.String("to", sum.ToAddress),
		zap.String("amount", sum.Amount.String()+" "+sum.Unit))
}

func networkName(testnet bool) string {
	if testnet {
		return "testnet"
	}
	return "mainnet"
}
