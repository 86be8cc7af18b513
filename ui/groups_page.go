package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/ctf_platform_client/pkg/staleguard"
	"github.com/to404hanga/ctf_platform_client/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// groupsState 列表数据放指针后面, 乐观变更的恢复闭包跨 Update
// 拷贝仍指向同一份状态.
type groupsState struct {
	groups []model.Group
}

// GroupsPageModel 管理端分组页: 删除走确认 -> 本地先行 -> 远端确认,
// 远端拒绝(比赛进行中)时精确回滚并展示提取出的错误文案.
type GroupsPageModel struct {
	api    PlatformAPI
	log    loggerv2.Logger
	styles Styles

	// 变更回执走独立的 guard: 列表刷新作废的是数据票据,
	// 不能作废在途变更, 否则忙标志与回滚都悬空
	guard    *staleguard.Guard
	mutGuard *staleguard.Guard
	mutator  *service.Mutator[[]model.Group]
	state    *groupsState

	confirm confirmModel
	notice  noticeModel
	cursor  int

	loading bool
	loadErr string
}

func NewGroupsPageModel(api PlatformAPI, styles Styles, log loggerv2.Logger) GroupsPageModel {
	return GroupsPageModel{
		api:      api,
		log:      log,
		styles:   styles,
		guard:    new(staleguard.Guard),
		mutGuard: new(staleguard.Guard),
		mutator:  service.NewMutator[[]model.Group](log),
		state:    &groupsState{},
		confirm:  newConfirmModel(styles),
		notice:   newNoticeModel(styles),
	}
}

func (m GroupsPageModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m *GroupsPageModel) fetchCmd() tea.Cmd {
	ticket := m.guard.Begin()
	api := m.api
	m.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		groups, err := api.GetGroupList(ctx)
		return groupDataMsg{ticket: ticket, groups: groups, err: err}
	}
}

func (m GroupsPageModel) Update(msg tea.Msg) (GroupsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case groupDataMsg:
		if !msg.ticket.Live() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = httptool.UserMessage(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.state.groups = msg.groups
		m.clampCursor()
		return m, nil

	case mutationResultMsg:
		if !msg.ticket.Live() {
			return m, nil
		}
		notice := m.mutator.Resolve(context.Background(), msg.err)
		m.clampCursor()
		cmd := m.notice.Set(notice)
		return m, cmd

	case deleteGroupRequestMsg:
		cmd := m.beginDelete(msg.id)
		return m, cmd

	case noticeExpireMsg:
		m.notice.Expire(msg)
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active() {
			cmd := m.confirm.HandleKey(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *GroupsPageModel) handleKey(msg tea.KeyMsg) (GroupsPageModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.groups)-1 {
			m.cursor++
		}
	case "r":
		cmd := m.fetchCmd()
		return *m, cmd
	case "d":
		if m.cursor >= len(m.state.groups) {
			return *m, nil
		}
		group := m.state.groups[m.cursor]
		// accept 只投递意图消息, 真正的快照与本地变更发生在
		// 收到消息时的当前模型上
		m.confirm.Ask(fmt.Sprintf("Delete group %q?", group.Name), func() tea.Cmd {
			return func() tea.Msg {
				return deleteGroupRequestMsg{id: group.ID}
			}
		})
	}
	return *m, nil
}

type deleteGroupRequestMsg struct {
	id uint64
}

// beginDelete 确认之后才走到这里: 拍快照, 本地先删, 远端跟进
func (m *GroupsPageModel) beginDelete(id uint64) tea.Cmd {
	param := model.DeleteGroupParam{ID: id}
	state := m.state

	ok, notice := m.mutator.Begin(context.Background(), param,
		func() []model.Group {
			snap := make([]model.Group, len(state.groups))
			copy(snap, state.groups)
			return snap
		},
		func() {
			kept := state.groups[:0]
			for _, group := range state.groups {
				if group.ID != id {
					kept = append(kept, group)
				}
			}
			state.groups = kept
		},
		func(snap []model.Group) {
			state.groups = snap
		},
		"group deleted")
	if !ok {
		return m.notice.Set(notice)
	}

	ticket := m.mutGuard.Begin()
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		return mutationResultMsg{ticket: ticket, err: api.DeleteGroup(ctx, param)}
	}
}

func (m *GroupsPageModel) clampCursor() {
	if m.cursor >= len(m.state.groups) {
		m.cursor = len(m.state.groups) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m GroupsPageModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Groups (admin)"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("loading...\n")
	case m.loadErr != "":
		b.WriteString(m.styles.Error.Render(m.loadErr))
		b.WriteString("\n")
	case len(m.state.groups) == 0:
		b.WriteString(m.styles.RowDim.Render("no groups"))
		b.WriteString("\n")
	default:
		for i, group := range m.state.groups {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			b.WriteString(m.styles.Row.Render(fmt.Sprintf(
				"%s%-24s contest=%d  %d challenges", marker, group.Name, group.ContestID, group.ChallengeCount)))
			b.WriteString("\n")
		}
	}

	if modal := m.confirm.View(); modal != "" {
		b.WriteString(modal)
		b.WriteString("\n")
	}
	if notice := m.notice.View(); notice != "" {
		b.WriteString(notice)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("↑/↓ move  d delete  r reload"))
	b.WriteString("\n")
	return b.String()
}

func (m *GroupsPageModel) Close() {
	m.guard.Close()
	m.mutGuard.Close()
}
