package service

import (
	"sync"
	"time"
)

// SearchDebounceDelay 搜索输入静默期
const SearchDebounceDelay = 320 * time.Millisecond

// Debouncer 合并密集触发: 静默期内的新调度会替换旧的, 最终只执行
// 最后一次. 被替换或取消的回调保证不再执行(定时器竞态由代次号兜底).
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	seq      uint64
	duration time.Duration
}

func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Schedule 在静默期后执行 fn, 替换任何未执行的调度
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		live := seq == d.seq
		d.mu.Unlock()
		if live {
			fn()
		}
	})
}

// Cancel 取消未执行的调度, 视图卸载时必须调用
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
