package public

import (
	"errors"

	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.msg
			if msg == "" {
				msg = err.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var authTokenErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidToken, code: response.CodeUnauthorized, msg: "Invalid or expired token"},
	{target: service.ErrTokenRevoked, code: response.CodeUnauthorized, msg: "Session has been revoked"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, msg: "Account disabled"},
	{target: service.ErrNotFound, code: response.CodeUnauthorized, msg: "Account not found"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, msg: "Invalid email address"},
	{target: service.ErrEmailExists, code: response.CodeConflict, msg: "Email already registered"},
	// 密码策略错误保留具体提示
	{target: service.ErrWeakPassword, code: response.CodeBadRequest},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "Invalid email or password"},
	{target: service.ErrInvalidEmail, code: response.CodeUnauthorized, msg: "Invalid email or password"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, msg: "Account disabled"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "User not found"},
	{target: service.ErrProfileEmpty, code: response.CodeBadRequest, msg: "No profile fields to update"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "Product not found"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "Product not found"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, msg: "Review not found"},
	{target: service.ErrReviewRejected, code: response.CodeInternal, msg: "Failed to submit review"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "Product not found"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "Invalid cart item"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "Cart item not found"},
	{target: service.ErrCartStorage, code: response.CodeInternal, msg: "Cart is temporarily unavailable"},
}

var notificationErrorRules = []mappedHandlerError{
	{target: service.ErrNotificationNotFound, code: response.CodeNotFound, msg: "Notification not found"},
}
