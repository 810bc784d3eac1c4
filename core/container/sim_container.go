package container

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mahjong-rtsim/common/config"
	"mahjong-rtsim/common/log"
	"mahjong-rtsim/common/utils"
	"mahjong-rtsim/core/infrastructure/cache"
	"mahjong-rtsim/core/infrastructure/persistence"
	"mahjong-rtsim/core/infrastructure/realtime"
	"mahjong-rtsim/runtime/calc"
	"mahjong-rtsim/runtime/game"
	"mahjong-rtsim/runtime/game/engines/mahjong"
	"mahjong-rtsim/runtime/kifu"
	"mahjong-rtsim/runtime/stream"
)

// SimContainer 牌面服务的依赖容器
// 数据库只在 kifu.enabled 时连接，nats 只在配置了 url 时连接
type SimContainer struct {
	*BaseContainer
	Worker    *game.Worker
	calcCache *cache.CalcResultCache
	closed    bool
	mu        sync.Mutex
}

func NewSimContainer(ctx context.Context, conf *config.Config) (*SimContainer, error) {
	rules := mahjong.DefaultRules
	rules.RedFives = conf.Engine.RedFives
	session := game.NewSession(rules, conf.Engine.KeepHandOnEmpty)

	var opts []calc.Option
	if conf.Engine.CalcRatePerSec > 0 {
		opts = append(opts, calc.WithRateLimiter(utils.NewRateLimiter(float64(conf.Engine.CalcRatePerSec), max(conf.Engine.CalcBurst, 1))))
	}
	var calcCache *cache.CalcResultCache
	if conf.Engine.CalcCacheMaxMB > 0 && conf.Engine.CalcCacheTtlSec > 0 {
		var err error
		calcCache, err = cache.NewCalcResultCache(
			int64(conf.Engine.CalcCacheMaxMB)<<20,
			time.Duration(conf.Engine.CalcCacheTtlSec)*time.Second,
		)
		if err != nil {
			return nil, fmt.Errorf("创建计算结果缓存失败: %w", err)
		}
		opts = append(opts, calc.WithCache(calcCache))
	}
	calcClient := calc.NewClient(conf.Engine.CalcUrl, time.Duration(conf.Engine.CalcTimeoutMs)*time.Millisecond, opts...)

	c := &SimContainer{calcCache: calcCache}
	recorder := kifu.NewRecorder(nil, nil)
	if conf.Kifu.Enabled {
		base, err := NewBase(conf.DatabaseConf)
		if err != nil {
			c.closeCache()
			return nil, fmt.Errorf("基础容器初始化失败: %w", err)
		}
		c.BaseContainer = base

		repo := persistence.NewKifuRepository(base.GetMongo(), conf.Kifu.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("牌谱索引创建失败: %v", err)
		}
		recorder = kifu.NewRecorder(repo, realtime.NewRedisStepBuffer(base.GetRedis(), conf.Kifu.BufferKey))
	}

	var bridge *stream.NatsBridge
	if conf.Nats.Url != "" {
		bridge = stream.NewNatsBridge(conf.Nats.Url, conf.Nats.SnapshotSubject, conf.Nats.BoardSubject)
	}

	c.Worker = game.NewWorker(session, calcClient, recorder, bridge)
	log.Info("SimContainer 创建完成, kifu=%v nats=%v", conf.Kifu.Enabled, bridge != nil)
	return c, nil
}

func (c *SimContainer) closeCache() {
	if c.calcCache != nil {
		c.calcCache.Close()
	}
}

// Close 幂等；关闭顺序：1. Worker 2. 缓存 3. BaseContainer（数据库连接）
func (c *SimContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.Worker != nil {
		c.Worker.Close()
	}
	c.closeCache()
	if c.BaseContainer != nil {
		if err := c.BaseContainer.Close(); err != nil {
			return fmt.Errorf("BaseContainer 关闭失败: %w", err)
		}
	}
	log.Info("SimContainer 已关闭")
	return nil
}
