package container

import (
	"mahjong-rtsim/common/config"
	"mahjong-rtsim/common/database"
	"mahjong-rtsim/common/log"
)

// BaseContainer 管理共享的数据库连接，只在开启牌谱记录时创建
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

// NewBase 任一数据库连接失败都会关闭已建立的连接并返回错误
func NewBase(conf config.DatabaseConf) (*BaseContainer, error) {
	mongo, err := database.NewMongo(conf.MongoConf)
	if err != nil {
		return nil, err
	}
	redis, err := database.NewRedis(conf.RedisConf)
	if err != nil {
		_ = mongo.Close()
		return nil, err
	}

	log.Info("mongodb、redis 数据库服务启动成功")

	return &BaseContainer{
		mongo: mongo,
		redis: redis,
	}, nil
}

func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

// Close 关闭所有资源
func (c *BaseContainer) Close() error {
	e1 := c.mongo.Close()
	e2 := c.redis.Close()
	if e1 != nil {
		log.Error("mongo 关闭失败: %v", e1)
	}
	if e2 != nil {
		log.Error("redis 关闭失败: %v", e2)
	}
	if e1 != nil {
		return e1
	}
	return e2
}
