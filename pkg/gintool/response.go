package gintool

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应体, 错误语义靠 HTTP 状态码承载
type ErrorBody struct {
	Error string `json:"error"`
}

// GinError 以给定状态码返回 {"error": message}
func GinError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Error: message})
}

// GinAbortError 中间件用: 返回错误并终止后续处理
func GinAbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}
