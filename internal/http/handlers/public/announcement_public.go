package public

import (
	"strconv"

	"github.com/studio360-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListActiveAnnouncements 查询当前生效的系统公告
func (h *Handler) ListActiveAnnouncements(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	announcements, err := h.AnnouncementService.ListPublic(c.Request.Context(), limit)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list announcements", err)
		return
	}

	response.Success(c, announcements)
}
