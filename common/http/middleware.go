package http

import (
	"fmt"
	"net/http"

	"mahjong-rtsim/common/log"

	"github.com/google/uuid"
)

// CorsMiddleware 跨域中间件，前端页面与服务分开部署时需要
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID")
		}
		// 处理预检请求
		if c.Method() == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
		}
		return nil
	}
}

// LoggerMiddleware 记录请求
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		log.Debug("%s", requestLine(c))
		return nil
	}
}

func requestLine(c *Context) string {
	return fmt.Sprintf("HTTP Request: %s %s from %s (%s), request-id: %s",
		c.Method(), c.Path(), c.ClientIP(), c.UserAgent(), c.GetString("requestID"))
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestID", requestID)
		c.SetHeader("X-Request-ID", requestID)
		return nil
	}
}

// SecurityMiddleware 安全头
func SecurityMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		c.SetHeader("X-Content-Type-Options", "nosniff")
		c.SetHeader("X-Frame-Options", "DENY")
		return nil
	}
}
