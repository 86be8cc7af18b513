package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/ctf_platform_client/pkg/staleguard"
	"github.com/to404hanga/ctf_platform_client/service"
	"github.com/to404hanga/ctf_platform_client/service/exporter/factory"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// LeaderboardPageModel 排行榜页. 模式是和类型: 练习榜分页,
// 比赛榜一次拉全量. 切到比赛模式但还没有可用的进行中比赛时,
// 拉取推迟到比赛 id 解析出来为止.
type LeaderboardPageModel struct {
	svc       service.LeaderboardService
	exporters *factory.RankingExporterFactory
	exportDir string
	log       loggerv2.Logger
	styles    Styles

	guard *staleguard.Guard
	mode  service.LeaderboardMode

	contests           []model.Contest
	pendingCompetition bool

	canonical *model.CanonicalLeaderboard
	meta      model.PageMeta
	page      int
	pageSize  int

	loading bool
	loadErr string
	notice  noticeModel
}

func NewLeaderboardPageModel(svc service.LeaderboardService, exporters *factory.RankingExporterFactory, exportDir string, pageSize int, styles Styles, log loggerv2.Logger) LeaderboardPageModel {
	if pageSize <= 0 {
		pageSize = service.DefaultPageSize
	}
	return LeaderboardPageModel{
		svc:       svc,
		exporters: exporters,
		exportDir: exportDir,
		log:       log,
		styles:    styles,
		guard:     new(staleguard.Guard),
		mode:      service.PracticeMode{},
		page:      1,
		pageSize:  pageSize,
		notice:    newNoticeModel(styles),
	}
}

func (m LeaderboardPageModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m *LeaderboardPageModel) fetchCmd() tea.Cmd {
	ticket := m.guard.Begin()
	svc := m.svc
	mode := m.mode
	page, pageSize := m.page, m.pageSize
	m.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		canonical, err := svc.Fetch(ctx, mode, page, pageSize)
		return leaderboardDataMsg{ticket: ticket, canonical: canonical, err: err}
	}
}

func (m LeaderboardPageModel) Update(msg tea.Msg) (LeaderboardPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case leaderboardDataMsg:
		if !msg.ticket.Live() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = httptool.UserMessage(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.canonical = msg.canonical
		m.meta = service.LeaderboardPageMeta(msg.canonical, m.page, m.pageSize)
		return m, nil

	case refreshSnapshotMsg:
		m.contests = msg.Contests
		if m.pendingCompetition {
			return m.tryEnterCompetition(msg.FetchedAt)
		}
		return m, nil

	case contestDataMsg:
		// 比赛清单也喂给本页, 解除推迟中的比赛榜拉取
		if msg.err == nil && msg.contests != nil {
			m.contests = msg.contests
			if m.pendingCompetition {
				return m.tryEnterCompetition(time.Now())
			}
		}
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			cmd := m.notice.Set(service.Notice{Kind: service.NoticeError, Text: msg.err.Error()})
			return m, cmd
		}
		cmd := m.notice.Set(service.Notice{Kind: service.NoticeSuccess, Text: "exported " + msg.path})
		return m, cmd

	case noticeExpireMsg:
		m.notice.Expire(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *LeaderboardPageModel) handleKey(msg tea.KeyMsg) (LeaderboardPageModel, tea.Cmd) {
	switch msg.String() {
	case "m":
		return m.toggleMode()
	case "r":
		// 挂起中没有可请求的比赛 id, 重载只是再试一次解析
		if m.pendingCompetition {
			return m.tryEnterCompetition(time.Now())
		}
		cmd := m.fetchCmd()
		return *m, cmd
	case "left", "h":
		if _, practice := m.mode.(service.PracticeMode); practice && !m.pendingCompetition && m.meta.HasPrev {
			m.page--
			cmd := m.fetchCmd()
			return *m, cmd
		}
	case "right", "l":
		if _, practice := m.mode.(service.PracticeMode); practice && !m.pendingCompetition && m.meta.HasNext {
			m.page++
			cmd := m.fetchCmd()
			return *m, cmd
		}
	case "e":
		cmd := m.exportCmd(factory.CSVRankingExporter)
		return *m, cmd
	case "x":
		cmd := m.exportCmd(factory.XLSXRankingExporter)
		return *m, cmd
	}
	return *m, nil
}

// toggleMode 模式切换总是重置页码与数据, 两种榜的分页簿记互不串线
func (m *LeaderboardPageModel) toggleMode() (LeaderboardPageModel, tea.Cmd) {
	m.page = 1
	m.canonical = nil
	m.meta = model.PageMeta{}

	_, practice := m.mode.(service.PracticeMode)
	if !practice || m.pendingCompetition {
		m.mode = service.PracticeMode{}
		m.pendingCompetition = false
		cmd := m.fetchCmd()
		return *m, cmd
	}
	return m.tryEnterCompetition(time.Now())
}

// tryEnterCompetition 找进行中的正式赛; 找不到就挂起等比赛清单更新.
// 挂起期间 mode 保持原值, 缺 id 的 CompetitionMode 根本不会被构造,
// 拉取推迟到 id 解析出来为止.
func (m *LeaderboardPageModel) tryEnterCompetition(now time.Time) (LeaderboardPageModel, tea.Cmd) {
	for _, contest := range m.contests {
		if contest.Type != model.ContestTypeCompetition {
			continue
		}
		if info := service.ResolvePhase(now, contest.StartTime, contest.EndTime); info.Phase == model.PhaseOngoing {
			m.mode = service.CompetitionMode{ContestID: contest.ID, ContestName: contest.Name}
			m.pendingCompetition = false
			cmd := m.fetchCmd()
			return *m, cmd
		}
	}
	m.pendingCompetition = true
	return *m, nil
}

func (m *LeaderboardPageModel) exportCmd(kind factory.RankingExporterType) tea.Cmd {
	if m.canonical == nil {
		return m.notice.Set(service.Notice{Kind: service.NoticeError, Text: "nothing to export"})
	}
	canonical := m.canonical
	exp := m.exporters.GetRankingExporter(kind)
	dir := m.exportDir
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("create export dir failed: %w", err)}
		}
		path := filepath.Join(dir, "ranking-"+time.Now().Format("20060102-150405")+factory.ExporterSuffixMap[kind])
		file, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("create export file failed: %w", err)}
		}
		defer file.Close()

		if err = exp.Export(ctx, canonical, file); err != nil {
			return exportDoneMsg{err: fmt.Errorf("export ranking failed: %w", err)}
		}
		return exportDoneMsg{path: path}
	}
}

func (m LeaderboardPageModel) View() string {
	var b strings.Builder

	title := "Leaderboard · Practice"
	if m.pendingCompetition {
		title = "Leaderboard · Competition"
	} else if competition, ok := m.mode.(service.CompetitionMode); ok && competition.ContestName != "" {
		title = "Leaderboard · " + competition.ContestName
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")

	switch {
	case m.pendingCompetition:
		b.WriteString(m.styles.RowDim.Render("waiting for an ongoing competition..."))
		b.WriteString("\n")
	case m.loading:
		b.WriteString("loading...\n")
	case m.loadErr != "":
		b.WriteString(m.styles.Error.Render(m.loadErr))
		b.WriteString("\n")
	case m.canonical == nil || len(m.canonical.Entries) == 0:
		b.WriteString(m.styles.RowDim.Render("no entries"))
		b.WriteString("\n")
	default:
		b.WriteString(fmt.Sprintf("%-6s %-20s %8s %8s  %s\n", "rank", "user", "score", "solved", "last submission"))
		for _, entry := range m.canonical.Entries {
			lastAt := ""
			if entry.LastSubmissionAt != nil {
				lastAt = *entry.LastSubmissionAt
			}
			b.WriteString(m.styles.Row.Render(fmt.Sprintf(
				"%-6d %-20s %8d %8d  %s", entry.Rank, entry.Username, entry.Score, entry.Solved, lastAt)))
			b.WriteString("\n")
		}
	}

	if notice := m.notice.View(); notice != "" {
		b.WriteString(notice)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render(fmt.Sprintf(
		"page %d  ·  m mode  ←/→ page  e csv  x xlsx  r reload", m.page)))
	b.WriteString("\n")
	return b.String()
}

func (m *LeaderboardPageModel) Close() {
	m.guard.Close()
}
