package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/contracts"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{cfg: cfg, userRepo: userRepo, now: time.Now}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenType    string `json:"token_type"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// Session 登录结果
type Session struct {
	User         *models.User
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthResponse 转换为接口响应
func (s *Session) AuthResponse() contracts.AuthResponse {
	return contracts.AuthResponse{
		User:         ToContractUser(s.User),
		Token:        s.Token,
		RefreshToken: s.RefreshToken,
	}
}

// generateToken 签发指定类型的令牌
func (s *UserAuthService) generateToken(user *models.User, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenType:    tokenType,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *UserAuthService) issueSession(user *models.User) (*Session, error) {
	access, expiresAt, err := s.generateToken(user, constants.TokenTypeAccess, s.cfg.UserJWT.AccessTTL())
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.generateToken(user, constants.TokenTypeRefresh, s.cfg.UserJWT.RefreshTTL())
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}

// ParseUserJWT 解析并校验签名、有效期与令牌类型
func (s *UserAuthService) ParseUserJWT(tokenString, tokenType string) (*UserJWTClaims, error) {
	if strings.TrimSpace(s.cfg.UserJWT.SecretKey) == "" {
		return nil, ErrInvalidToken
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate 校验访问令牌并确认账号状态与令牌版本，优先使用缓存快照
func (s *UserAuthService) Authenticate(ctx context.Context, tokenString string) (*UserJWTClaims, error) {
	claims, err := s.ParseUserJWT(tokenString, constants.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *UserAuthService) checkRevocation(ctx context.Context, claims *UserJWTClaims) error {
	state, hit, cacheErr := cache.GetUserAuthState(ctx, claims.UserID)
	if cacheErr != nil || !hit || state == nil {
		user, err := s.userRepo.GetByID(claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrInvalidToken
		}
		state = cache.BuildUserAuthState(user)
		_ = cache.SetUserAuthState(ctx, state)
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}
	switch state.Check(claims.TokenVersion, issuedAt) {
	case cache.TokenUserDisabled:
		return ErrUserDisabled
	case cache.TokenRevoked:
		return ErrTokenRevoked
	default:
		return nil
	}
}

// Register 用户注册，成功后直接登录
func (s *UserAuthService) Register(ctx context.Context, req contracts.RegisterRequest) (*Session, error) {
	normalized, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, req.Password); err != nil {
		return nil, err
	}
	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &models.User{
		Email:        normalized,
		PasswordHash: string(hashed),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.Phone),
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
		LastLoginAt:  &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.FirstName == "" {
		user.FirstName = resolveNicknameFromEmail(normalized)
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return s.issueSession(user)
}

// Login 用户登录
func (s *UserAuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !isActiveUserStatus(user.Status) {
		return nil, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.userRepo.TouchLogin(user.ID, now); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return s.issueSession(user)
}

// Refresh 用刷新令牌换取新的令牌对
func (s *UserAuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.ParseUserJWT(strings.TrimSpace(refreshToken), constants.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return s.issueSession(user)
}

// Logout 吊销该用户已签发的全部令牌
func (s *UserAuthService) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrNotFound
	}
	if _, err := s.userRepo.RevokeTokens(userID, s.now()); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil || user == nil {
		_ = cache.DelUserAuthState(ctx, userID)
		return err
	}
	_ = cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user))
	return nil
}

// GetProfile 当前用户资料
func (s *UserAuthService) GetProfile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 局部更新用户资料
func (s *UserAuthService) UpdateProfile(userID uint, patch contracts.ProfileUpdate) (*models.User, error) {
	if patch.FirstName == nil && patch.LastName == nil && patch.Phone == nil {
		return nil, ErrProfileEmpty
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != nil {
		user.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		user.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Phone != nil {
		user.Phone = strings.TrimSpace(*patch.Phone)
	}
	user.UpdatedAt = s.now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveNicknameFromEmail(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if ok && strings.TrimSpace(local) != "" {
		return strings.TrimSpace(local)
	}
	return email
}

func isActiveUserStatus(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == models.UserStatusActive
}

// IsAuthError 是否为令牌相关错误
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrTokenRevoked) || errors.Is(err, ErrUserDisabled)
}
