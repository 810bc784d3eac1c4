package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"mahjong-rtsim/common/cache"
)

// CalcResultCache 请求体摘要 -> 远程计算结果
// 同一牌面反复点"计算"时不再打到计算端
type CalcResultCache struct {
	cache  *cache.GeneralCache
	prefix string
}

func NewCalcResultCache(maxBytes int64, ttl time.Duration) (*CalcResultCache, error) {
	generalCache, err := cache.NewGeneralCache(maxBytes, ttl)
	if err != nil {
		return nil, fmt.Errorf("创建计算结果缓存失败: %w", err)
	}
	return &CalcResultCache{cache: generalCache, prefix: "calc:result"}, nil
}

// Key 由请求体算出缓存键
func (c *CalcResultCache) Key(body []byte) string {
	sum := sha256.Sum256(body)
	return c.prefix + ":" + hex.EncodeToString(sum[:])
}

func (c *CalcResultCache) Set(key string, result []byte) bool {
	if key == "" || len(result) == 0 {
		return false
	}
	return c.cache.SetBytes(key, result)
}

func (c *CalcResultCache) Get(key string) ([]byte, bool) {
	return c.cache.GetBytes(key)
}

func (c *CalcResultCache) Wait() {
	c.cache.Wait()
}

func (c *CalcResultCache) Close() {
	c.cache.Close()
}
