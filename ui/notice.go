package ui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/to404hanga/ctf_platform_client/service"
)

// noticeToken 全局代次号: 到期消息会广播到所有页面,
// token 全局唯一才能保证只清掉自己的提示
var noticeToken atomic.Uint64

// noticeModel 瞬态提示行. token 代次号保证旧提示的到期消息
// 不会清掉后来的新提示.
type noticeModel struct {
	current service.Notice
	token   uint64
	styles  Styles
}

func newNoticeModel(styles Styles) noticeModel {
	return noticeModel{styles: styles}
}

// Set 替换当前提示并调度到期清除; 空提示不触碰现状
func (n *noticeModel) Set(notice service.Notice) tea.Cmd {
	if notice.Empty() {
		return nil
	}
	n.current = notice
	n.token = noticeToken.Add(1)
	token := n.token
	return tea.Tick(service.NoticeTTL, func(time.Time) tea.Msg {
		return noticeExpireMsg{token: token}
	})
}

func (n *noticeModel) Expire(msg noticeExpireMsg) {
	if msg.token == n.token {
		n.current = service.Notice{}
	}
}

func (n *noticeModel) View() string {
	switch n.current.Kind {
	case service.NoticeSuccess:
		return n.styles.Success.Render(n.current.Text)
	case service.NoticeError:
		return n.styles.Error.Render(n.current.Text)
	default:
		return ""
	}
}
