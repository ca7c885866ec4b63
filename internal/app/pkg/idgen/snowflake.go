package idgen

import (
	"strconv"
	"sync"
	"time"
)

// SnowflakeIDGenerator 简化的雪花ID生成器
// ID格式: 时间戳(秒) + 机器ID(2位) + 序列号(3位)
type SnowflakeIDGenerator struct {
	mu        sync.Mutex
	epoch     int64
	machineID int64
	sequence  int64
	lastTime  int64
	now       func() time.Time
}

const (
	maxMachineID = 99
	maxSequence  = 999
)

// NewSnowflakeIDGenerator 创建ID生成器，machineID 范围 0-99
func NewSnowflakeIDGenerator(machineID int64) *SnowflakeIDGenerator {
	if machineID < 0 || machineID > maxMachineID {
		machineID = 0
	}

	return &SnowflakeIDGenerator{
		epoch:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		machineID: machineID,
		now:       time.Now,
	}
}

// NextID 生成下一个ID
func (g *SnowflakeIDGenerator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().Unix()

	switch {
	case now < g.lastTime:
		// 时钟回拨时沿用上次的时间戳，继续递增序列号
		now = g.lastTime
		fallthrough
	case now == g.lastTime:
		g.sequence = (g.sequence + 1) % (maxSequence + 1)
		if g.sequence == 0 {
			// 序列号用尽，等待下一秒
			for now <= g.lastTime {
				time.Sleep(time.Millisecond)
				now = g.now().Unix()
			}
		}
	default:
		g.sequence = 0
	}

	g.lastTime = now
	return (now-g.epoch)*100000 + g.machineID*1000 + g.sequence
}

// NextOrderNo 形如 "PS-1234501234"
func (g *SnowflakeIDGenerator) NextOrderNo() string {
	return "PS-" + strconv.FormatInt(g.NextID(), 10)
}
