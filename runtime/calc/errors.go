package calc

import "errors"

var (
	// ErrRemoteRejected 计算端返回 success=false
	ErrRemoteRejected = errors.New("calc server rejected the request")
	// ErrRemoteUnavailable 网络错误、超时或非 200
	ErrRemoteUnavailable = errors.New("calc server unavailable")
	ErrRateLimited       = errors.New("too many calc requests")
)
