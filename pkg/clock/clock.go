package clock

import (
	"sync"
	"time"
)

// Clock 当前时间来源，测试中替换为 Fixed 以固定"今天"
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// New 返回系统时钟
func New() Clock { return realClock{} }

// Fixed 可手动拨动的时钟
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{now: t}
}

func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *Fixed) Add(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// DaySeed 日期种子 year*10000 + month*100 + day，只取决于 loc 下的日历日期
func DaySeed(t time.Time, loc *time.Location) int {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// StartOfDay loc 下 t 所在日期的零点
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
