// Package auth 会话状态：登录、注册、注销、刷新令牌与资料更新
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/storage"
	"github.com/dujiao-next/storefront/internal/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrNoRefreshToken 没有可用的刷新令牌
var ErrNoRefreshToken = errors.New("no refresh token available")

const (
	persistTimeout = 5 * time.Second
	refreshTimeout = 15 * time.Second
)

// Backend 认证接口
type Backend interface {
	Login(ctx context.Context, req contracts.LoginRequest) (*contracts.AuthResponse, error)
	Register(ctx context.Context, req contracts.RegisterRequest) (*contracts.AuthResponse, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, refreshToken string) (*contracts.AuthResponse, error)
	UpdateProfile(ctx context.Context, patch contracts.ProfileUpdate) (*contracts.User, error)
}

// State 会话状态，IsAuthenticated 当且仅当 User 与 Token 均存在
type State struct {
	User            *contracts.User
	Token           string
	RefreshToken    string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

func session(user *contracts.User, token, refreshToken string) State {
	return State{
		User:            user,
		Token:           token,
		RefreshToken:    refreshToken,
		IsAuthenticated: user != nil && token != "",
	}
}

// Store 会话状态容器
type Store struct {
	state   *store.Writable[State]
	backend Backend
	storage storage.Storage
	log     *zap.SugaredLogger
	refresh singleflight.Group
	stop    func()

	// lastPersisted 最近一次成功写入的指纹，synced 为 false 时下一次快照必定落盘
	lastPersisted string
	synced        bool
}

// NewStore 创建会话状态容器并从本地存储恢复会话
func NewStore(ctx context.Context, backend Backend, st storage.Storage, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = logger.Named("auth")
	}
	s := &Store{backend: backend, storage: st, log: log}
	s.state = store.New(s.load(ctx))
	s.stop = s.state.Subscribe(s.persist)
	return s
}

// Close 停止持久化订阅
func (s *Store) Close() {
	if s.stop != nil {
		s.stop()
	}
}

// State 当前快照
func (s *Store) State() State {
	return s.state.Get()
}

// Subscribe 订阅会话变化
func (s *Store) Subscribe(fn func(State)) func() {
	return s.state.Subscribe(fn)
}

// IsAdmin 管理员视图
func (s *Store) IsAdmin() store.Readable[bool] {
	return store.Derive[State, bool](s.state, func(st State) bool {
		return st.User != nil && st.User.Role == contracts.RoleAdmin
	})
}

// IsUser 普通用户视图
func (s *Store) IsUser() store.Readable[bool] {
	return store.Derive[State, bool](s.state, func(st State) bool {
		return st.User != nil && st.User.Role == contracts.RoleUser
	})
}

// IsAuthenticated 登录状态视图
func (s *Store) IsAuthenticated() store.Readable[bool] {
	return store.Derive[State, bool](s.state, func(st State) bool { return st.IsAuthenticated })
}

// Login 登录
func (s *Store) Login(ctx context.Context, req contracts.LoginRequest) error {
	s.begin()
	resp, err := s.backend.Login(ctx, req)
	return s.finishAuth(resp, err)
}

// Register 注册
func (s *Store) Register(ctx context.Context, req contracts.RegisterRequest) error {
	s.begin()
	resp, err := s.backend.Register(ctx, req)
	return s.finishAuth(resp, err)
}

// Logout 注销，远端失败只记录日志，本地会话总是被清除
func (s *Store) Logout(ctx context.Context) {
	s.state.Update(func(st State) State {
		st.IsLoading = true
		return st
	})
	if err := s.backend.Logout(ctx); err != nil {
		s.log.Warnw("auth_logout_remote_failed", "error", err)
	}
	s.state.Set(session(nil, "", ""))
}

// RefreshToken 刷新令牌，失败时先完整注销再返回错误；并发调用共享同一次请求，
// 共享请求不随任一调用方的 ctx 取消
func (s *Store) RefreshToken(ctx context.Context) error {
	ch := s.refresh.DoChan("refresh", func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return nil, s.doRefresh(rctx)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) doRefresh(ctx context.Context) error {
	s.begin()
	refreshToken := s.state.Get().RefreshToken

	var (
		resp *contracts.AuthResponse
		err  error
	)
	if refreshToken == "" {
		err = ErrNoRefreshToken
	} else {
		resp, err = s.backend.Refresh(ctx, refreshToken)
	}
	if err == nil && resp == nil {
		err = errors.New("empty refresh response")
	}
	if err != nil {
		s.log.Warnw("auth_refresh_failed", "error", err)
		s.Logout(ctx)
		return err
	}
	user := resp.User
	s.state.Set(session(&user, resp.Token, resp.RefreshToken))
	return nil
}

// UpdateProfile 更新资料
func (s *Store) UpdateProfile(ctx context.Context, patch contracts.ProfileUpdate) error {
	s.begin()
	user, err := s.backend.UpdateProfile(ctx, patch)
	if err != nil {
		s.fail(err)
		return err
	}
	s.state.Update(func(st State) State {
		st.User = user
		st.IsAuthenticated = st.User != nil && st.Token != ""
		st.IsLoading = false
		st.Error = ""
		return st
	})
	return nil
}

// ClearError 清除错误
func (s *Store) ClearError() {
	s.state.Update(func(st State) State {
		st.Error = ""
		return st
	})
}

// SetLoading 设置加载状态
func (s *Store) SetLoading(loading bool) {
	s.state.Update(func(st State) State {
		st.IsLoading = loading
		return st
	})
}

func (s *Store) begin() {
	s.state.Update(func(st State) State {
		st.IsLoading = true
		st.Error = ""
		return st
	})
}

func (s *Store) fail(err error) {
	s.state.Update(func(st State) State {
		st.IsLoading = false
		st.Error = err.Error()
		return st
	})
}

func (s *Store) finishAuth(resp *contracts.AuthResponse, err error) error {
	if err == nil && resp == nil {
		err = errors.New("empty auth response")
	}
	if err != nil {
		s.fail(err)
		return err
	}
	user := resp.User
	s.state.Set(session(&user, resp.Token, resp.RefreshToken))
	return nil
}

func (s *Store) load(ctx context.Context) State {
	token, okToken, err := s.storage.Get(ctx, storage.KeyAuthToken)
	if err != nil {
		s.log.Warnw("auth_load_failed", "error", err)
		return session(nil, "", "")
	}
	var user contracts.User
	okUser, err := storage.GetJSON(ctx, s.storage, storage.KeyUser, &user)
	if err != nil {
		s.log.Warnw("auth_load_failed", "error", err)
		return session(nil, "", "")
	}
	if !okToken || token == "" || !okUser {
		return session(nil, "", "")
	}
	refreshToken, _, err := s.storage.Get(ctx, storage.KeyRefreshToken)
	if err != nil {
		s.log.Warnw("auth_load_refresh_token_failed", "error", err)
	}
	return session(&user, token, refreshToken)
}

// persist 会话字段变化时写入本地存储，未登录时删除全部键
func (s *Store) persist(st State) {
	fp := persistFingerprint(st)
	if s.synced && fp == s.lastPersisted {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var errs []error
	if st.IsAuthenticated {
		errs = append(errs,
			s.storage.Set(ctx, storage.KeyAuthToken, st.Token),
			s.storage.Set(ctx, storage.KeyRefreshToken, st.RefreshToken),
			storage.SetJSON(ctx, s.storage, storage.KeyUser, st.User),
		)
	} else {
		errs = append(errs,
			s.storage.Remove(ctx, storage.KeyAuthToken),
			s.storage.Remove(ctx, storage.KeyRefreshToken),
			s.storage.Remove(ctx, storage.KeyUser),
		)
	}
	if err := errors.Join(errs...); err != nil {
		s.synced = false
		s.log.Warnw("auth_persist_failed", "error", err)
		return
	}
	s.lastPersisted, s.synced = fp, true
}

func persistFingerprint(st State) string {
	if !st.IsAuthenticated {
		return ""
	}
	user, _ := json.Marshal(st.User)
	return st.Token + "\x00" + st.RefreshToken + "\x00" + string(user)
}
