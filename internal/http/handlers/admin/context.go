package admin

import (
	"github.com/dujiao-next/storefront/internal/constants"
	handlershared "github.com/dujiao-next/storefront/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func currentUserID(c *gin.Context) uint {
	return handlershared.OptionalContextUint(c, constants.ContextKeyUserID)
}

func currentRole(c *gin.Context) string {
	return handlershared.ContextString(c, constants.ContextKeyUserRole)
}
