// Package apiclient storefront REST 接口客户端
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/storage"

	"go.uber.org/zap"
)

const (
	// DefaultTimeout 默认请求超时
	DefaultTimeout = 10 * time.Second
	// AuthTokenKey 本地存储中的访问令牌键
	AuthTokenKey = storage.KeyAuthToken
)

// APIError 接口错误，Status 为 0 表示网络错误
type APIError struct {
	Status  int
	Message string
	Data    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// StatusOf 返回错误中的 HTTP 状态码，非 APIError 返回 -1
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return -1
}

// TokenSource 提供请求携带的 bearer token
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc 函数适配
type TokenSourceFunc func(ctx context.Context) (string, error)

// Token 实现 TokenSource
func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StorageToken 每次请求时从本地存储读取 authToken
func StorageToken(st storage.Storage) TokenSource {
	return TokenSourceFunc(func(ctx context.Context) (string, error) {
		token, ok, err := st.Get(ctx, AuthTokenKey)
		if err != nil || !ok {
			return "", err
		}
		return token, nil
	})
}

// Client REST 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	headers    http.Header
	log        *zap.SugaredLogger
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 自定义 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTokenSource 设置 token 来源
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithHeader 追加默认请求头
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithLogger 设置日志
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New 创建客户端，baseURL 形如 http://localhost:8080/api/v1
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		headers:    http.Header{},
		log:        zap.NewNop().Sugar(),
	}
	c.headers.Set("Content-Type", "application/json")
	c.headers.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get 发送 GET 请求并解码 data
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) (*contracts.Pagination, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post 发送 POST 请求
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

// Put 发送 PUT 请求
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPut, path, nil, body, out)
	return err
}

// Patch 发送 PATCH 请求
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Do(ctx, http.MethodPatch, path, nil, body, out)
	return err
}

// Delete 发送 DELETE 请求
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// Do 执行请求：附加 bearer token，解析统一响应包装，将 data 解码到 out
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out interface{}) (*contracts.Pagination, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debugw("api_request_failed", "method", method, "path", path, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &APIError{Status: 0, Message: "network error: unable to connect to server"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: 0, Message: fmt.Sprintf("read response: %v", err)}
	}

	var env contracts.Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message, Data: raw}
		if decodeErr != nil {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, apiErr
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if decodeErr != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: "invalid response body", Data: raw}
	}
	if !env.Success {
		msg := env.Message
		if msg == "" && len(env.Errors) > 0 {
			msg = env.Errors[0]
		}
		if msg == "" {
			msg = "request failed"
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg, Data: env.Data}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return env.Pagination, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warnw("api_token_read_failed", "error", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}
