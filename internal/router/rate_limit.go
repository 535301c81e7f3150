package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	// BlockSeconds 超限后封禁时长，0 表示等待窗口结束
	BlockSeconds int
	Message      string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) message(retryAfter int) string {
	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		msg = "Too many requests"
	}
	return fmt.Sprintf("%s, retry in %ds", msg, retryAfter)
}

// 首次计数设置窗口过期，恰好越过阈值时改为封禁时长
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if tonumber(ARGV[2]) > 0 and current == tonumber(ARGV[3]) + 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[2])
end
return {current, redis.call("TTL", KEYS[1])}
`)

type fixedWindowLimiter struct {
	client redis.Scripter
	rule   RateLimitRule
}

// allow 计数一次，超限时返回需要等待的秒数
func (l fixedWindowLimiter) allow(ctx context.Context, key string) (retryAfter int, allowed bool, err error) {
	res, err := fixedWindowScript.Run(ctx, l.client, []string{key}, l.rule.WindowSeconds, l.rule.BlockSeconds, l.rule.MaxRequests).Int64Slice()
	if err != nil {
		return 0, false, err
	}
	if len(res) < 2 {
		return 0, false, fmt.Errorf("rate limit script returned %d values", len(res))
	}
	if res[0] <= int64(l.rule.MaxRequests) {
		return 0, true, nil
	}
	return waitSeconds(res[1], l.rule.WindowSeconds), false, nil
}

// waitSeconds TTL 缺失（-1/-2）时退回窗口长度，至少 1 秒
func waitSeconds(ttl int64, window int) int {
	wait := int(ttl)
	if wait < 1 {
		wait = window
	}
	return max(wait, 1)
}

// RateLimitMiddleware Redis 固定窗口限流，client 为空或规则未配置时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if client == nil || !rule.enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := fixedWindowLimiter{client: client, rule: rule}
	return func(c *gin.Context) {
		key := rateLimitKey(c, rule.Prefix, keyFunc)
		retryAfter, allowed, err := limiter.allow(c.Request.Context(), key)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, "Rate limiter unavailable")
			c.Abort()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, response.CodeTooManyRequests, rule.message(retryAfter))
			c.Abort()
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context, prefix string, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 JSON 字段 + IP 作为限流 key，字段缺失时只用 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONString 读取请求体中的字符串字段并还原请求体
func peekJSONString(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if raw, ok := payload[field]; !ok || json.Unmarshal(raw, &text) != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
