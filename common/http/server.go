package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// ErrorMapper 把 handler 返回的错误翻译为 HTTP 状态码和业务码
type ErrorMapper func(err error) (status int, code int)

func defaultErrorMapper(error) (int, int) {
	return http.StatusInternalServerError, CodeServerError
}

// HttpServer HTTP 服务器封装
type HttpServer struct {
	engine      *gin.Engine
	server      *http.Server
	port        int
	errorMapper ErrorMapper
}

// ServerOption 服务器配置选项
type ServerOption func(*HttpServer)

func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 设置运行模式，debug 以外一律 release
func WithMode(mode string) ServerOption {
	return func(s *HttpServer) {
		switch mode {
		case gin.DebugMode, gin.TestMode:
			gin.SetMode(mode)
		default:
			gin.SetMode(gin.ReleaseMode)
		}
	}
}

func WithErrorMapper(mapper ErrorMapper) ServerOption {
	return func(s *HttpServer) {
		s.errorMapper = mapper
	}
}

// NewHttpServer 创建 HTTP 服务器
func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{
		port:        8080,
		errorMapper: defaultErrorMapper,
	}
	for _, opt := range opts {
		opt(server)
	}
	// gin.New 需在 SetMode 之后
	server.engine = gin.New()
	server.engine.Use(gin.Recovery())
	return server
}

func (s *HttpServer) wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			status, code := s.errorMapper(err)
			ctx.ErrorWithStatus(status, code, err.Error())
		}
	}
}

func (s *HttpServer) wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := middleware(ctx); err != nil {
			ctx.InternalServerError(err.Error())
			c.Abort()
			return
		}
		if c.IsAborted() {
			return
		}
		c.Next()
	}
}

func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, s.wrapHandler(handler))
}

func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, s.wrapHandler(handler))
}

// Group 创建路由组
func (s *HttpServer) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := s.engine.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(s.wrapMiddleware(middleware))
	}
	return &RouterGroup{
		group:  ginGroup,
		server: s,
	}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group  *gin.RouterGroup
	server *HttpServer
}

func (rg *RouterGroup) GET(path string, handler HandlerFunc) {
	rg.group.GET(path, rg.server.wrapHandler(handler))
}

func (rg *RouterGroup) POST(path string, handler HandlerFunc) {
	rg.group.POST(path, rg.server.wrapHandler(handler))
}

func (rg *RouterGroup) DELETE(path string, handler HandlerFunc) {
	rg.group.DELETE(path, rg.server.wrapHandler(handler))
}

// Group 创建子路由组
func (rg *RouterGroup) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := rg.group.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(rg.server.wrapMiddleware(middleware))
	}
	return &RouterGroup{
		group:  ginGroup,
		server: rg.server,
	}
}

// Use 添加全局中间件
func (s *HttpServer) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		s.engine.Use(s.wrapMiddleware(middleware))
	}
}

// Start 启动服务器，正常关闭时返回 nil
func (s *HttpServer) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.engine,
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务器
func (s *HttpServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler 测试中配合 httptest 使用
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

func (s *HttpServer) GetPort() int {
	return s.port
}
