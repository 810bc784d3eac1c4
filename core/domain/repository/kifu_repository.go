package repository

import (
	"context"

	"mahjong-rtsim/core/domain/entity"
)

// KifuRepository 牌谱仓储接口
type KifuRepository interface {
	// Save 保存牌谱，名称已存在时返回 ErrRecordNameTaken
	Save(ctx context.Context, record *entity.KifuRecord) error

	// Exists 名称是否已被使用
	Exists(ctx context.Context, name string) (bool, error)

	// FindByName 不存在时返回 ErrKifuNotFound
	FindByName(ctx context.Context, name string) (*entity.KifuRecord, error)

	// List 按创建时间倒序
	List(ctx context.Context, limit int) ([]entity.KifuSummary, error)
}

// StepBuffer 记录中的帧缓冲，停止记录时整体落库
type StepBuffer interface {
	Append(ctx context.Context, step *entity.KifuStep) error
	All(ctx context.Context) ([]entity.KifuStep, error)
	Clear(ctx context.Context) error
}
