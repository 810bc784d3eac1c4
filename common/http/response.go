package http

import "net/http"

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess      = 0     // 成功
	CodeError        = -1    // 通用错误
	CodeInvalidParam = 10001 // 参数错误
	CodeNotFound     = 10004 // 资源不存在
	CodeServerError  = 10005 // 服务器内部错误
	CodeConflict     = 10006 // 牌面状态冲突
	CodeBusy         = 10007 // 计算进行中
	CodeUpstream     = 10008 // 远程计算失败
)

const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgNotFound     = "not found"
	MsgServerError  = "internal server error"
)

func NewResponse(code int, message string, data interface{}) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// Success 成功响应
func (c *Context) Success(data interface{}) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// SuccessWithMessage 成功响应（自定义消息）
func (c *Context) SuccessWithMessage(message string, data interface{}) {
	c.JSON(http.StatusOK, NewResponse(CodeSuccess, message, data))
}

// ErrorWithStatus 由错误映射器决定状态码和业务码
func (c *Context) ErrorWithStatus(status, code int, message string) {
	c.JSON(status, NewResponse(code, message, nil))
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.JSON(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, nil))
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.JSON(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}
