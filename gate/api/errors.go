package api

import (
	"errors"
	nethttp "net/http"

	"mahjong-rtsim/common/http"
	"mahjong-rtsim/core/domain/repository"
	"mahjong-rtsim/runtime/calc"
	"mahjong-rtsim/runtime/dto"
	"mahjong-rtsim/runtime/game/engines/mahjong"
	"mahjong-rtsim/runtime/kifu"
)

type errorMapping struct {
	targets []error
	status  int
	code    int
}

var errorMappings = []errorMapping{
	{[]error{dto.ErrBusy}, nethttp.StatusLocked, http.CodeBusy},
	{[]error{
		mahjong.ErrInvariantViolation, mahjong.ErrSlotFull, mahjong.ErrSlotMismatch,
		mahjong.ErrNoSelection, mahjong.ErrNothingToRemove, mahjong.ErrMeldTileReadOnly,
		mahjong.ErrUnknownCandidate, kifu.ErrRecordingDisabled, repository.ErrRecordNameTaken,
	}, nethttp.StatusConflict, http.CodeConflict},
	{[]error{
		dto.ErrInvalidRequest, mahjong.ErrInvalidTile, mahjong.ErrUnsupportedMeldBreak,
		mahjong.ErrMalformedSnapshot, mahjong.ErrHandSize, mahjong.ErrInvalidFlag,
		mahjong.ErrInvalidSyanten, kifu.ErrNotRecording, kifu.ErrInvalidRecordName,
	}, nethttp.StatusBadRequest, http.CodeInvalidParam},
	{[]error{repository.ErrKifuNotFound, kifu.ErrStepOutOfRange}, nethttp.StatusNotFound, http.CodeNotFound},
	{[]error{calc.ErrRateLimited}, nethttp.StatusTooManyRequests, http.CodeBusy},
	{[]error{calc.ErrRemoteRejected, calc.ErrRemoteUnavailable}, nethttp.StatusBadGateway, http.CodeUpstream},
}

// MapError 把各层的哨兵错误翻译为 HTTP 状态码和业务码，未知错误按 500 处理
func MapError(err error) (int, int) {
	for _, m := range errorMappings {
		for _, target := range m.targets {
			if errors.Is(err, target) {
				return m.status, m.code
			}
		}
	}
	return nethttp.StatusInternalServerError, http.CodeServerError
}
