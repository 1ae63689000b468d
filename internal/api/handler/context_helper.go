package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"complaint-desk/pkg/response"
)

// parseID 从路径参数 :id 解析正整数 ID。
// 解析失败时写入 400 响应并返回 false，调用方应直接 return。
func parseID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, response.CodeInvalidParam, "Invalid id")
		return 0, false
	}
	return id, true
}
