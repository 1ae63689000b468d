package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应结构：前端读取 message 字段展示
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MessageBody 写操作确认响应
type MessageBody struct {
	Message string `json:"message"`
}

// 通用错误码；各资源模块的错误码在 Handler 中定义
const (
	CodeInvalidParam    = 10001
	CodeTooManyRequests = 10004
	CodeBodyTooLarge    = 10005
	CodeInternal        = 50000
)

// ErrorCodeKey 错误响应写入的业务错误码在 gin.Context 中的 key，供请求日志读取
const ErrorCodeKey = "response_error_code"

// ── 成功响应 ──

// OK 200，直接输出数据本身（数组或对象）
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, MessageBody{Message: message})
}

// Message 200 更新/删除成功
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.Set(ErrorCodeKey, code)
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}

// AbortWithError 中间件中使用：写入错误并中止后续处理
func AbortWithError(c *gin.Context, httpStatus int, code int, message string) {
	c.Set(ErrorCodeKey, code)
	c.AbortWithStatusJSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
}
