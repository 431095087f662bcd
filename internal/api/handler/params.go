package handler

import (
	"strconv"

	"vida-likes/internal/service"

	"github.com/gin-gonic/gin"
)

// parsePagination 非法值回落到默认值，过大的页码截到 service.MaxPage
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	page = min(page, service.MaxPage)
	if pageSize < 1 || pageSize > service.MaxPageSize {
		pageSize = 20
	}
	return page, pageSize
}

// parseIDParam 解析路径中的 :id，必须为正整数
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
