package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// WrapHandler 包装处理函数, 绑定 JSON 体
func WrapHandler[T any](h func(c *gin.Context, pType T), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param T
		if err := c.ShouldBindJSON(&param); err != nil {
			GinError(c, http.StatusBadRequest, err.Error())
			log.ErrorContext(c.Request.Context(), "WrapHandler bind json failed", logger.Error(err))
			return
		}

		h(c, param)
	}
}

// WrapQueryHandler 包装处理函数, 只绑定 Query
func WrapQueryHandler[T any](h func(c *gin.Context, pType T), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var param T
		if c.Request.URL != nil && c.Request.URL.RawQuery != "" {
			if err := c.ShouldBindQuery(&param); err != nil {
				GinError(c, http.StatusBadRequest, err.Error())
				log.ErrorContext(c.Request.Context(), "WrapQueryHandler bind query failed", logger.Error(err))
				return
			}
		}

		h(c, param)
	}
}
