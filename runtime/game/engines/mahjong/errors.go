package mahjong

import "errors"

// 牌面校验相关错误
var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrInvalidTile        = errors.New("invalid tile id")
	ErrSlotFull           = errors.New("slot full")
)

// 选择状态相关错误
var (
	ErrNoSelection      = errors.New("no active selection")
	ErrNothingToRemove  = errors.New("selection has no tile to remove")
	ErrMeldTileReadOnly = errors.New("meld tiles cannot be edited individually, re-click the meld to break it")
)

// 副露相关错误
var (
	ErrSlotMismatch         = errors.New("slot mismatch")
	ErrUnsupportedMeldBreak = errors.New("only self melds can be broken")
	ErrUnknownCandidate     = errors.New("unknown meld candidate")
)

// 输入输出相关错误
var (
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrHandSize          = errors.New("hand size out of range")
	ErrInvalidFlag       = errors.New("invalid calc flag")
	ErrInvalidSyanten    = errors.New("invalid syanten type")
)
