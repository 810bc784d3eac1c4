package dto

import "errors"

// 会话相关错误
var (
	// ErrBusy 远程计算进行中，牌面暂不接受修改
	ErrBusy = errors.New("board is busy with a calculation")
)

// 请求相关错误
var (
	ErrInvalidRequest = errors.New("invalid request")
)
