package calc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mahjong-rtsim/common/log"
	"mahjong-rtsim/common/utils"
	"mahjong-rtsim/core/infrastructure/cache"
	"mahjong-rtsim/runtime/game/engines/mahjong"
)

const maxResponseBytes = 8 << 20

// Response 计算端的响应外壳
type Response struct {
	Success  bool            `json:"success"`
	ErrMsg   string          `json:"err_msg,omitempty"`
	Request  json.RawMessage `json:"request,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

// Result 一次计算的结果
type Result struct {
	Raw     json.RawMessage `json:"raw"`
	Summary *Summary        `json:"summary"`
	Cached  bool            `json:"cached"`
}

// Client 远程期望值计算端
type Client struct {
	url     string
	http    *http.Client
	cache   *cache.CalcResultCache
	limiter *utils.RateLimiter
}

type Option func(*Client)

// WithCache 相同请求体直接返回缓存
func WithCache(c *cache.CalcResultCache) Option {
	return func(client *Client) {
		client.cache = c
	}
}

func WithRateLimiter(l *utils.RateLimiter) Option {
	return func(client *Client) {
		client.limiter = l
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(client *Client) {
		client.http = h
	}
}

func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate 发送请求并汇总结果，turn 取自请求本身
func (c *Client) Calculate(ctx context.Context, req *mahjong.CalcRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化计算请求失败: %w", err)
	}

	var key string
	if c.cache != nil {
		key = c.cache.Key(body)
		if raw, ok := c.cache.Get(key); ok {
			summary, err := Summarize(raw, req.Turn)
			if err == nil {
				log.Debug("calc cache hit: %s", key)
				return &Result{Raw: raw, Summary: summary, Cached: true}, nil
			}
		}
	}

	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(raw, req.Turn)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, raw)
	}
	return &Result{Raw: raw, Summary: summary}, nil
}

func (c *Client) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		log.Error("calc 请求失败: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Error("calc 返回状态码 %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, resp.StatusCode)
	}

	var envelope Response
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrRemoteUnavailable, err)
	}
	if !envelope.Success {
		log.Warn("calc 拒绝请求: %s", envelope.ErrMsg)
		return nil, fmt.Errorf("%w: %s", ErrRemoteRejected, envelope.ErrMsg)
	}
	log.Info("calc 完成, 耗时 %v", time.Since(start))
	return envelope.Response, nil
}
