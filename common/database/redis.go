package database

import (
	"context"
	"fmt"
	"time"

	"mahjong-rtsim/common/config"
	"mahjong-rtsim/common/log"

	"github.com/redis/go-redis/v9"
)

type RedisManager struct {
	Cli        *redis.Client
	ClusterCli *redis.ClusterClient
}

func NewRedis(redisConf config.RedisConf) (*RedisManager, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := &RedisManager{}
	if len(redisConf.ClusterAddrs) > 0 {
		r.ClusterCli = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        redisConf.ClusterAddrs,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	} else {
		addr := redisConf.Addr
		if addr == "" && redisConf.Host != "" && redisConf.Port > 0 {
			addr = fmt.Sprintf("%s:%d", redisConf.Host, redisConf.Port)
		}
		if addr == "" {
			return nil, fmt.Errorf("redis 配置出错: 缺少地址")
		}
		r.Cli = redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     redisConf.Password,
			PoolSize:     redisConf.PoolSize,
			MinIdleConns: redisConf.MinIdleConns,
		})
	}

	cli, _ := r.GetClient()
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis 连接错误: %w", err)
	}
	return r, nil
}

// GetClient 单机和集群统一成 Cmdable
func (r *RedisManager) GetClient() (redis.Cmdable, error) {
	if r.Cli != nil {
		return r.Cli, nil
	}
	if r.ClusterCli != nil {
		return r.ClusterCli, nil
	}
	return nil, fmt.Errorf("redis 客户端未初始化")
}

func (r *RedisManager) Del(ctx context.Context, keys ...string) error {
	cli, err := r.GetClient()
	if err != nil {
		return err
	}
	return cli.Del(ctx, keys...).Err()
}

func (r *RedisManager) Close() error {
	if r == nil {
		return nil
	}
	if r.Cli != nil {
		if err := r.Cli.Close(); err != nil {
			log.Error("redis 关闭出错: %v", err)
			return err
		}
	}
	if r.ClusterCli != nil {
		if err := r.ClusterCli.Close(); err != nil {
			log.Error("redisCluster 关闭出错: %v", err)
			return err
		}
	}
	return nil
}
