package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 通用本地缓存，支持 TTL
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache 创建通用缓存
// maxCost: 最大内存成本（字节）
// ttl: 默认过期时间，0 表示不过期
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}
	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 设置缓存，使用默认 TTL
func (c *GeneralCache) Set(key string, value interface{}) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetBytes 按字节数计成本，计算结果这类大对象用它
func (c *GeneralCache) SetBytes(key string, value []byte) bool {
	return c.cache.SetWithTTL(key, value, int64(len(value)), c.ttl)
}

func (c *GeneralCache) SetWithTTL(key string, value interface{}, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

func (c *GeneralCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *GeneralCache) GetBytes(key string) ([]byte, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := value.([]byte)
	return b, ok
}

func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

// Wait 等待写缓冲落地，Set 之后立即 Get 的场景需要
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

func (c *GeneralCache) Close() {
	c.cache.Close()
}
