package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context 封装 gin.Context，handler 只依赖这一层
type Context struct {
	ginCtx *gin.Context
}

func newContext(c *gin.Context) *Context {
	return &Context{ginCtx: c}
}

// GetParam 获取路径参数
func (c *Context) GetParam(key string) string {
	return c.ginCtx.Param(key)
}

// GetQuery 获取查询参数
func (c *Context) GetQuery(key string) string {
	return c.ginCtx.Query(key)
}

// GetQueryWithDefault 获取查询参数，带默认值
func (c *Context) GetQueryWithDefault(key, defaultValue string) string {
	return c.ginCtx.DefaultQuery(key, defaultValue)
}

func (c *Context) GetHeader(key string) string {
	return c.ginCtx.GetHeader(key)
}

// BindJSON 绑定 JSON 请求体
func (c *Context) BindJSON(obj interface{}) error {
	return c.ginCtx.ShouldBindJSON(obj)
}

// GetRawData 获取原始请求体，快照等自由格式的 JSON 走这里
func (c *Context) GetRawData() ([]byte, error) {
	return c.ginCtx.GetRawData()
}

func (c *Context) JSON(code int, obj interface{}) {
	c.ginCtx.JSON(code, obj)
}

func (c *Context) SetHeader(key, value string) {
	c.ginCtx.Header(key, value)
}

func (c *Context) ClientIP() string {
	return c.ginCtx.ClientIP()
}

func (c *Context) UserAgent() string {
	return c.ginCtx.GetHeader("User-Agent")
}

func (c *Context) Method() string {
	return c.ginCtx.Request.Method
}

func (c *Context) Path() string {
	return c.ginCtx.Request.URL.Path
}

// Set 设置上下文值
func (c *Context) Set(key string, value interface{}) {
	c.ginCtx.Set(key, value)
}

// Get 获取上下文值
func (c *Context) Get(key string) (interface{}, bool) {
	return c.ginCtx.Get(key)
}

func (c *Context) GetString(key string) string {
	return c.ginCtx.GetString(key)
}

func (c *Context) AbortWithStatus(code int) {
	c.ginCtx.AbortWithStatus(code)
}

func (c *Context) IsAborted() bool {
	return c.ginCtx.IsAborted()
}

// Ctx 请求级 context，客户端断开时取消
func (c *Context) Ctx() context.Context {
	return c.ginCtx.Request.Context()
}

// Request 获取原始 http.Request（谨慎使用）
func (c *Context) Request() *http.Request {
	return c.ginCtx.Request
}

// Writer websocket 升级时需要
func (c *Context) Writer() http.ResponseWriter {
	return c.ginCtx.Writer
}
