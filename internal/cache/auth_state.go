package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/models"
)

const authStateTTL = 10 * time.Minute

// TokenVerdict 会话快照对令牌的判定结果
type TokenVerdict int

const (
	// TokenAccepted 令牌有效
	TokenAccepted TokenVerdict = iota
	// TokenUserDisabled 账号已禁用
	TokenUserDisabled
	// TokenRevoked 令牌版本落后或签发早于吊销时间点
	TokenRevoked
)

// UserAuthState 用户会话快照，InvalidBefore 为 Unix 秒，0 表示从未吊销
type UserAuthState struct {
	UserID        uint   `json:"user_id"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
	TokenVersion  uint64 `json:"token_version"`
	InvalidBefore int64  `json:"invalid_before"`
}

func authStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState 从用户记录生成快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Role:         user.Role,
		Active:       strings.EqualFold(strings.TrimSpace(user.Status), models.UserStatusActive),
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		state.InvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// Check 判定给定版本与签发时间的令牌是否仍然有效
func (s *UserAuthState) Check(tokenVersion uint64, issuedAt time.Time) TokenVerdict {
	switch {
	case !s.Active:
		return TokenUserDisabled
	case tokenVersion != s.TokenVersion:
		return TokenRevoked
	case s.InvalidBefore > 0 && (issuedAt.IsZero() || issuedAt.Unix() < s.InvalidBefore):
		return TokenRevoked
	default:
		return TokenAccepted
	}
}

// GetUserAuthState 读取快照，未命中时 hit 为 false
func GetUserAuthState(ctx context.Context, userID uint) (state *UserAuthState, hit bool, err error) {
	if userID == 0 {
		return nil, false, nil
	}
	var cached UserAuthState
	if hit, err = GetJSON(ctx, authStateKey(userID), &cached); err != nil || !hit {
		return nil, hit, err
	}
	return &cached, true, nil
}

// SetUserAuthState 写入快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, authStateKey(state.UserID), state, authStateTTL)
}

// DelUserAuthState 删除快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, authStateKey(userID))
}
