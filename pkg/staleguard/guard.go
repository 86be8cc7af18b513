// Package staleguard 提供按资源的请求定序守卫: 后发请求获胜,
// 迟到或视图已卸载的异步完成被静默丢弃.
package staleguard

import "sync/atomic"

// Guard 归属于单个视图实例的单个资源.
// 每次发起拉取前调用 Begin 领取 Ticket; 异步完成(无论成败)先检查
// Ticket.Live, 不通过则不得触碰任何状态.
type Guard struct {
	seq    atomic.Uint64
	closed atomic.Bool
}

// Begin 递增序号并返回本次请求的票据
func (g *Guard) Begin() Ticket {
	return Ticket{guard: g, seq: g.seq.Add(1)}
}

// Close 视图卸载时调用, 之后所有票据永久失效
func (g *Guard) Close() {
	g.closed.Store(true)
}

// Closed 守卫是否已关闭
func (g *Guard) Closed() bool {
	return g.closed.Load()
}

type Ticket struct {
	guard *Guard
	seq   uint64
}

// Live 仅当守卫未关闭且没有更新的请求发出时为真
func (t Ticket) Live() bool {
	return t.guard != nil && !t.guard.closed.Load() && t.guard.seq.Load() == t.seq
}
