package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	HttpPort     int          `mapstructure:"httpPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	Engine       EngineConf   `mapstructure:"engine"`
	Kifu         KifuConf     `mapstructure:"kifu"`
	Nats         NatsConf     `mapstructure:"nats"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// EngineConf 牌面引擎与远程计算端
type EngineConf struct {
	RedFives        bool   `mapstructure:"redFives"`
	KeepHandOnEmpty bool   `mapstructure:"keepHandOnEmpty"`
	CalcUrl         string `mapstructure:"calcUrl"`
	CalcTimeoutMs   int    `mapstructure:"calcTimeoutMs"`
	CalcCacheTtlSec int    `mapstructure:"calcCacheTtlSec"`
	CalcCacheMaxMB  int    `mapstructure:"calcCacheMaxMB"`
	CalcRatePerSec  int    `mapstructure:"calcRatePerSec"`
	CalcBurst       int    `mapstructure:"calcBurst"`
}

// KifuConf 牌谱记录，关闭时不连接 mongo/redis
type KifuConf struct {
	Enabled    bool   `mapstructure:"enabled"`
	Collection string `mapstructure:"collection"`
	BufferKey  string `mapstructure:"bufferKey"`
}

// NatsConf 识别端通过 nats 推送快照，url 为空时不启用
type NatsConf struct {
	Url             string `mapstructure:"url"`
	SnapshotSubject string `mapstructure:"snapshotSubject"`
	BoardSubject    string `mapstructure:"boardSubject"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
}

var (
	listenersMu sync.Mutex
	listeners   []func(*Config)
)

// OnChange 配置文件变更后回调，用于日志级别等可热更新的项
func OnChange(fn func(*Config)) {
	listenersMu.Lock()
	defer listenersMu.Unlock()
	listeners = append(listeners, fn)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "rtsim")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("engine.redFives", true)
	v.SetDefault("engine.keepHandOnEmpty", true)
	v.SetDefault("engine.calcUrl", "http://localhost:8888")
	v.SetDefault("engine.calcTimeoutMs", 10000)
	v.SetDefault("engine.calcCacheTtlSec", 600)
	v.SetDefault("engine.calcCacheMaxMB", 64)
	v.SetDefault("engine.calcRatePerSec", 2)
	v.SetDefault("engine.calcBurst", 4)
	v.SetDefault("kifu.collection", "kifu_records")
	v.SetDefault("kifu.bufferKey", "kifu:buffer")
	v.SetDefault("nats.snapshotSubject", "rtsim.snapshot")
	v.SetDefault("nats.boardSubject", "rtsim.board")
}

// Load 读取配置文件，环境变量可覆盖（log.level -> LOG_LEVEL）
func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件出错, err:%w", err)
	}
	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return fmt.Errorf("解析配置文件出错, err:%w", err)
	}
	Conf = conf

	v.OnConfigChange(func(in fsnotify.Event) {
		next := new(Config)
		if err := v.Unmarshal(next); err != nil {
			return
		}
		Conf = next
		listenersMu.Lock()
		fns := append([]func(*Config){}, listeners...)
		listenersMu.Unlock()
		for _, fn := range fns {
			fn(next)
		}
	})
	v.WatchConfig()
	return nil
}

// Default 不读文件时使用的配置，测试与本地调试用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	conf := new(Config)
	_ = v.Unmarshal(conf)
	return conf
}
