package tron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody 非 2xx 时最多保留的响应体长度
const maxErrorBody = 4096

// Client 通过 HTTP API 与 TRON 节点交互
type Client struct {
	httpClient *http.Client
}

// NewClient 创建节点客户端，httpClient 为 nil 时使用 http.DefaultClient
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// BroadcastTransaction 把交易 POST 到 <baseURL>/wallet/broadcasttransaction。
// 传输错误原样返回，非 2xx 返回 *HTTPError。
// 返回体中 result=false 不视为错误，由调用方判断。
func (c *Client) BroadcastTransaction(ctx context.Context, baseURL string, payload json.RawMessage) (*BroadcastResponse, error) {
	endpoint := strings.TrimRight(baseURL, "/") + BroadcastPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	var out BroadcastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode broadcast response: %w", err)
	}
	return &out, nil
}
