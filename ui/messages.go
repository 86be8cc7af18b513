package ui

import (
	"time"

	"github.com/to404hanga/ctf_platform_client/job"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/staleguard"
)

// 数据消息全部携带 staleguard 票据, 页面收到后先验票再落地,
// 迟到的旧响应被丢弃而不是覆盖新状态.

type contestDataMsg struct {
	ticket     staleguard.Ticket
	contests   []model.Contest
	challenges []model.Challenge
	err        error
}

type groupDataMsg struct {
	ticket staleguard.Ticket
	groups []model.Group
	err    error
}

type blogDataMsg struct {
	ticket staleguard.Ticket
	blogs  []model.Blog
	err    error
}

type leaderboardDataMsg struct {
	ticket    staleguard.Ticket
	canonical *model.CanonicalLeaderboard
	err       error
}

// mutationResultMsg 乐观变更的远端回执
type mutationResultMsg struct {
	ticket staleguard.Ticket
	err    error
}

// exportDoneMsg 排行榜导出完成
type exportDoneMsg struct {
	path string
	err  error
}

// reloginResultMsg 会话过期后重新登录的结果
type reloginResultMsg struct {
	err error
}

// searchTickMsg 防抖静默期后的重渲染触发
type searchTickMsg struct{}

// noticeExpireMsg 瞬态提示到期, token 不匹配说明已被新提示顶替
type noticeExpireMsg struct {
	token uint64
}

// refreshSnapshotMsg 后台刷新任务送达的全量快照
type refreshSnapshotMsg job.ContestSnapshot

// clockTickMsg 周期性重算比赛状态(状态迁移靠重新求值)
type clockTickMsg time.Time
