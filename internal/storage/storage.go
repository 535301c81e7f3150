// Package storage 定义状态容器使用的键值持久化接口及其实现
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// 客户端本地存储键
const (
	KeyCart         = "cart"
	KeyAuthToken    = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// ErrUnavailable 后端不可用（例如 Redis 未启用）
var ErrUnavailable = errors.New("storage backend unavailable")

// ErrMalformed 存储的值无法解码
var ErrMalformed = errors.New("malformed stored value")

// Storage 字符串键值持久化
type Storage interface {
	// Get 读取键值，键不存在时 ok 为 false
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// GetJSON 读取并解码 JSON 值
func GetJSON(ctx context.Context, s Storage, key string, dest interface{}) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w: %w", key, ErrMalformed, err)
	}
	return true, nil
}

// SetJSON 编码并写入 JSON 值
func SetJSON(ctx context.Context, s Storage, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(payload))
}

// Prefixed 为所有键加上命名空间前缀
func Prefixed(s Storage, prefix string) Storage {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return s
	}
	return &prefixed{inner: s, prefix: prefix + ":"}
}

type prefixed struct {
	inner  Storage
	prefix string
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.inner.Remove(ctx, p.prefix+key)
}
