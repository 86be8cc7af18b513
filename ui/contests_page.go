package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/ctf_platform_client/pkg/staleguard"
	"github.com/to404hanga/ctf_platform_client/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const categoryFilterName = "category"

// ContestsPageModel 题目总览页: 搜索/过滤/分页先裁出可见页,
// 再按状态分桶、按父比赛聚合渲染.
type ContestsPageModel struct {
	api    PlatformAPI
	log    loggerv2.Logger
	styles Styles

	guard  *staleguard.Guard
	query  *service.ListQuery[model.AnnotatedChallenge]
	search textinput.Model

	contests   []model.Contest
	challenges []model.Challenge
	categories []string
	categoryAt int // -1 表示未启用类别过滤

	loading bool
	loadErr string
}

func NewContestsPageModel(api PlatformAPI, pageSize int, styles Styles, log loggerv2.Logger) ContestsPageModel {
	search := textinput.New()
	search.Placeholder = "search title or category"
	search.CharLimit = 80

	query := service.NewListQuery(pageSize, func(item model.AnnotatedChallenge) []string {
		return []string{item.Challenge.Title, item.Challenge.Category, item.ContestLabel}
	})

	return ContestsPageModel{
		api:        api,
		log:        log,
		styles:     styles,
		guard:      new(staleguard.Guard),
		query:      query,
		search:     search,
		categoryAt: -1,
	}
}

func (m ContestsPageModel) Init() tea.Cmd {
	return m.fetchCmd()
}

// fetchCmd 串行拉取比赛与题目, 票据随消息回流
func (m *ContestsPageModel) fetchCmd() tea.Cmd {
	ticket := m.guard.Begin()
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		contests, err := api.GetContestList(ctx)
		if err != nil {
			return contestDataMsg{ticket: ticket, err: err}
		}
		challenges, err := api.GetChallengeList(ctx)
		if err != nil {
			return contestDataMsg{ticket: ticket, err: err}
		}
		return contestDataMsg{ticket: ticket, contests: contests, challenges: challenges}
	}
}

func (m ContestsPageModel) Update(msg tea.Msg) (ContestsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case contestDataMsg:
		if !msg.ticket.Live() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = httptool.UserMessage(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.contests = msg.contests
		m.challenges = msg.challenges
		m.rebuild(time.Now())
		return m, nil

	case refreshSnapshotMsg:
		m.contests = msg.Contests
		m.challenges = msg.Challenges
		m.rebuild(msg.FetchedAt)
		return m, nil

	case clockTickMsg:
		// 窗口跨界靠周期重算, 不靠每场比赛各自定时
		m.rebuild(time.Time(msg))
		return m, nil

	case searchTickMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ContestsPageModel) handleKey(msg tea.KeyMsg) (ContestsPageModel, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return *m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.query.SetSearch(m.search.Value())
		// 防抖提交发生在定时器协程, 补一个略迟于静默期的 tick 保证重渲染
		return *m, tea.Batch(cmd, tea.Tick(service.SearchDebounceDelay+20*time.Millisecond, func(time.Time) tea.Msg {
			return searchTickMsg{}
		}))
	}

	switch msg.String() {
	case "/":
		m.search.Focus()
		return *m, textinput.Blink
	case "r":
		m.loading = true
		cmd := m.fetchCmd()
		return *m, cmd
	case "f":
		m.cycleCategory()
		return *m, nil
	case "left", "h":
		m.query.SetPage(m.query.Page() - 1)
		return *m, nil
	case "right", "l":
		m.query.SetPage(m.query.Page() + 1)
		return *m, nil
	}
	return *m, nil
}

// cycleCategory 在"无过滤"与各类别之间轮转
func (m *ContestsPageModel) cycleCategory() {
	if len(m.categories) == 0 {
		return
	}
	m.categoryAt++
	if m.categoryAt >= len(m.categories) {
		m.categoryAt = -1
		m.query.ClearFilter(categoryFilterName)
		return
	}
	category := m.categories[m.categoryAt]
	m.query.SetFilter(categoryFilterName, func(item model.AnnotatedChallenge) bool {
		return item.Challenge.Category == category
	})
}

// rebuild 以给定时钟整体重算注解与类别清单
func (m *ContestsPageModel) rebuild(now time.Time) {
	annotated := service.AnnotateChallenges(now, m.challenges, m.contests)
	m.query.SetItems(annotated)

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, ch := range m.challenges {
		if _, exists := seen[ch.Category]; exists {
			continue
		}
		seen[ch.Category] = struct{}{}
		categories = append(categories, ch.Category)
	}
	sort.Strings(categories)
	m.categories = categories
}

func (m ContestsPageModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Challenges"))
	b.WriteString("\n")
	b.WriteString("search: " + m.search.View())
	if m.categoryAt >= 0 && m.categoryAt < len(m.categories) {
		b.WriteString("   filter: " + m.categories[m.categoryAt])
	}
	b.WriteString("\n")

	if m.loading {
		b.WriteString("loading...\n")
		return b.String()
	}
	if m.loadErr != "" {
		b.WriteString(m.styles.Error.Render(m.loadErr))
		b.WriteString("\n")
		return b.String()
	}

	page, meta := m.query.Apply()
	ongoing, upcoming, other := service.SplitByPhase(page)

	m.renderBucket(&b, "Ongoing", ongoing)
	m.renderBucket(&b, "Upcoming", upcoming)
	m.renderBucket(&b, "Past & Unscheduled", other)

	b.WriteString(m.styles.Help.Render(fmt.Sprintf(
		"page %d  ·  %d challenges  ·  / search  f filter  ←/→ page  r reload",
		meta.Page, meta.Count)))
	b.WriteString("\n")
	return b.String()
}

// renderBucket 桶内再按父比赛聚合, 空桶仍渲染标题保持版式稳定
func (m ContestsPageModel) renderBucket(b *strings.Builder, title string, items []model.AnnotatedChallenge) {
	b.WriteString(m.styles.Section.Render(title))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(m.styles.RowDim.Render("  (empty)"))
		b.WriteString("\n")
		return
	}

	for _, group := range service.GroupByContest(items) {
		b.WriteString("  " + m.styles.GroupHead.Render(group.Label))
		if len(group.Entries) > 0 {
			b.WriteString(" " + m.styles.Badge(group.Entries[0].Phase))
			if timing := group.Entries[0].Phase.TimingPrimary; timing != "" {
				b.WriteString(" " + m.styles.Timing.Render(timing))
			}
		}
		b.WriteString("\n")
		for _, entry := range group.Entries {
			b.WriteString(m.styles.Row.Render(fmt.Sprintf(
				"    %-30s %-10s %4d pts", entry.Challenge.Title, entry.Challenge.Category, entry.Challenge.Points)))
			b.WriteString("\n")
		}
	}
}

// Close 释放防抖定时器并作废在途票据
func (m *ContestsPageModel) Close() {
	m.query.Close()
	m.guard.Close()
}
