package game

import (
	"context"
	"runtime"
	"sync"
	"time"

	"mahjong-rtsim/common/log"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// LoadInfo 负载信息，/health 返回
type LoadInfo struct {
	Connections int       `json:"connections"`
	Goroutines  int       `json:"goroutines"`
	CPUUsage    float64   `json:"cpu_usage"` // 0-100
	MemUsage    float64   `json:"mem_usage"` // 0-100，系统内存
	HeapMB      float64   `json:"heap_mb"`
	Busy        bool      `json:"busy"`
	SampledAt   time.Time `json:"sampled_at"`
}

// Monitor 定期采样负载信息
type Monitor struct {
	connections    func() int
	busy           func() bool
	updateInterval time.Duration

	mu   sync.RWMutex
	last LoadInfo
}

// NewMonitor connections、busy 可以为 nil
func NewMonitor(connections func() int, busy func() bool, updateInterval time.Duration) *Monitor {
	return &Monitor{
		connections:    connections,
		busy:           busy,
		updateInterval: updateInterval,
	}
}

// Start 阻塞直到 ctx 结束
func (m *Monitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.updateInterval)
	defer ticker.Stop()

	m.sample()
	for {
		select {
		case <-ctx.Done():
			log.Info("Monitor 收到停止信号，退出监控")
			return
		case <-ticker.C:
			m.sample()
		}
	}
}

// Load 最近一次采样；连接数与忙碌状态实时读取
func (m *Monitor) Load() LoadInfo {
	m.mu.RLock()
	info := m.last
	m.mu.RUnlock()
	if m.connections != nil {
		info.Connections = m.connections()
	}
	if m.busy != nil {
		info.Busy = m.busy()
	}
	return info
}

func (m *Monitor) sample() {
	info := LoadInfo{
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now(),
	}
	// 0 间隔表示与上次调用之间的平均值
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info.CPUUsage = percents[0]
	} else if err != nil {
		log.Debug("采集 CPU 使用率失败: %v", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemUsage = vm.UsedPercent
	} else {
		log.Debug("采集内存使用率失败: %v", err)
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	info.HeapMB = float64(ms.HeapAlloc) / (1 << 20)

	m.mu.Lock()
	m.last = info
	m.mu.Unlock()
}
