// Package client 是投诉管理接口的类型化 HTTP 客户端。
// 读接口结果缓存在 QueryCache 中，写接口成功后按资源标签失效，
// 订阅者据此重新拉取数据。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"complaint-desk/internal/dto"
)

// DefaultBaseURL 本地开发环境的接口地址
const DefaultBaseURL = "http://localhost:4000/api"

// FallbackErrorMessage 响应体中没有 message 时的提示
const FallbackErrorMessage = "An unexpected error occurred"

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrorMessage 提取可展示给用户的错误信息
func ErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackErrorMessage
}

// IsNotFound 判断是否为 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client 接口客户端，可在多个 goroutine 间共享
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *QueryCache
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout 设置请求超时
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithCache 使用外部 QueryCache（多个客户端共享）
func WithCache(q *QueryCache) Option {
	return func(c *Client) { c.cache = q }
}

// New 创建客户端，baseURL 为空时使用 DefaultBaseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      NewQueryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cache 返回客户端使用的查询缓存
func (c *Client) Cache() *QueryCache {
	return c.cache
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// send 发送请求并返回响应体；非 2xx 转换为 *APIError
func (c *Client) send(ctx context.Context, method, path string, body interface{}) ([]byte, http.Header, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "build request %s %s", method, path)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read response %s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: FallbackErrorMessage}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Code = eb.Code
			if eb.Message != "" {
				apiErr.Message = eb.Message
			}
		}
		return nil, resp.Header, apiErr
	}
	return data, resp.Header, nil
}

// mutate 执行写请求，成功后失效 tags
func (c *Client) mutate(ctx context.Context, method, path string, body interface{}, tags ...string) (string, error) {
	data, _, err := c.send(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	c.cache.Invalidate(tags...)

	var mb dto.MessageResponse
	if err := json.Unmarshal(data, &mb); err != nil {
		return "", errors.Wrap(err, "decode response")
	}
	return mb.Message, nil
}

// query 带缓存的读请求，key 为请求路径
func query[T any](ctx context.Context, c *Client, path string, tags ...string) (T, error) {
	var out T
	if c.cache.get(path, &out) {
		return out, nil
	}

	data, _, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.Wrapf(err, "decode %s", path)
	}
	c.cache.set(path, data, tags...)
	return out, nil
}

func itemPath(resource string, id int) string {
	return fmt.Sprintf("/%s/%d", resource, id)
}
