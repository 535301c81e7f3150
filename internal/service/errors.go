package service

import "errors"

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
	// ErrInvalidEmail 邮箱格式错误
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrEmailExists 邮箱已注册
	ErrEmailExists = errors.New("email already registered")
	// ErrInvalidCredentials 账号或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserDisabled 账号已禁用
	ErrUserDisabled = errors.New("user disabled")
	// ErrWeakPassword 密码不满足策略
	ErrWeakPassword = errors.New("password does not meet policy")
	// ErrInvalidToken 令牌无效或已过期
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenRevoked 令牌已吊销
	ErrTokenRevoked = errors.New("token revoked")
	// ErrProfileEmpty 资料更新为空
	ErrProfileEmpty = errors.New("no profile fields to update")
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = errors.New("review not found")
	// ErrReviewInvalid 评价校验未通过
	ErrReviewInvalid = errors.New("review validation failed")
	// ErrReviewRejected 评价提交失败
	ErrReviewRejected = errors.New("review submission failed")
	// ErrInvalidCartItem 购物车行项目无效
	ErrInvalidCartItem = errors.New("invalid cart item")
	// ErrCartItemNotFound 购物车中无此行
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrCartStorage 购物车读写存储失败，修改未生效
	ErrCartStorage = errors.New("cart storage failed")
	// ErrNotificationNotFound 通知不存在
	ErrNotificationNotFound = errors.New("notification not found")
)
