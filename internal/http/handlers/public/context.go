package public

import (
	handlershared "github.com/studio360-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getSellerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "seller_id")
}
