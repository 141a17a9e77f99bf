package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookhub/pkg/errors"
	"github.com/xiebiao/bookhub/pkg/response"
)

// parseID 解析路径参数:id
// 非数字的ID不可能命中任何记录，调用方按"不存在"处理
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bindFailed 参数绑定失败统一返回参数错误
func bindFailed(c *gin.Context, err error) {
	response.Error(c, apperrors.ErrInvalidParams.WithDetail(err.Error()))
}
