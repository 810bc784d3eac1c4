package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"mahjong-rtsim/common/database"
	"mahjong-rtsim/common/log"
	"mahjong-rtsim/core/domain/entity"
	"mahjong-rtsim/core/domain/repository"
)

// RedisStepBuffer 记录中的帧按顺序存放在一个 redis list 里，进程重启后仍可继续
type RedisStepBuffer struct {
	redis *database.RedisManager
	key   string
}

func NewRedisStepBuffer(redis *database.RedisManager, key string) *RedisStepBuffer {
	return &RedisStepBuffer{redis: redis, key: key}
}

var _ repository.StepBuffer = (*RedisStepBuffer)(nil)

func (b *RedisStepBuffer) Append(ctx context.Context, step *entity.KifuStep) error {
	cli, err := b.redis.GetClient()
	if err != nil {
		return err
	}
	data, err := json.Marshal(step)
	if err != nil {
		return fmt.Errorf("序列化牌谱帧失败: %w", err)
	}
	if err := cli.RPush(ctx, b.key, data).Err(); err != nil {
		log.Error("写入牌谱缓冲失败: %v", err)
		return repository.ErrRedis
	}
	return nil
}

func (b *RedisStepBuffer) All(ctx context.Context) ([]entity.KifuStep, error) {
	cli, err := b.redis.GetClient()
	if err != nil {
		return nil, err
	}
	items, err := cli.LRange(ctx, b.key, 0, -1).Result()
	if err != nil {
		log.Error("读取牌谱缓冲失败: %v", err)
		return nil, repository.ErrRedis
	}
	steps := make([]entity.KifuStep, 0, len(items))
	for _, item := range items {
		var step entity.KifuStep
		if err := json.Unmarshal([]byte(item), &step); err != nil {
			log.Warn("牌谱缓冲中存在无法解析的帧: %v", err)
			continue
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (b *RedisStepBuffer) Clear(ctx context.Context) error {
	if err := b.redis.Del(ctx, b.key); err != nil {
		log.Error("清空牌谱缓冲失败: %v", err)
		return repository.ErrRedis
	}
	return nil
}
