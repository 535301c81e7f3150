package public

import (
	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, constants.ContextKeyUserID)
}

// optionalUserID 可选登录接口读取用户 ID，游客返回 0
func optionalUserID(c *gin.Context) uint {
	return handlershared.OptionalContextUint(c, constants.ContextKeyUserID)
}
