package ui

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/job"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/ctf_platform_client/service"
	"github.com/to404hanga/ctf_platform_client/service/exporter/factory"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// PlatformAPI 界面层依赖的全部远端操作
type PlatformAPI interface {
	GetContestList(ctx context.Context) ([]model.Contest, error)
	GetChallengeList(ctx context.Context) ([]model.Challenge, error)
	GetGroupList(ctx context.Context) ([]model.Group, error)
	DeleteGroup(ctx context.Context, param model.DeleteGroupParam) error
	GetBlogList(ctx context.Context) ([]model.Blog, error)
	CreateBlog(ctx context.Context, param model.CreateBlogParam) error
	UpdateBlog(ctx context.Context, param model.UpdateBlogParam) error
	DeleteBlog(ctx context.Context, param model.DeleteBlogParam) error
}

type page int8

const (
	pageContests page = iota
	pageLeaderboard
	pageBlogs
	pageGroups
)

// clockInterval 状态迁移靠周期重算而不是每场比赛各自定时
const clockInterval = 30 * time.Second

// App 根模型: 页面路由 + 崩溃边界. 单页渲染崩溃被隔离为恢复面板,
// 不拖垮整个终端会话.
type App struct {
	log     loggerv2.Logger
	styles  Styles
	relogin func(ctx context.Context) error

	active      page
	contests    ContestsPageModel
	leaderboard LeaderboardPageModel
	blogs       BlogsPageModel
	groups      GroupsPageModel

	crashed   bool
	crashInfo string

	sessionExpired bool
	sessionErr     string

	width  int
	height int
}

func NewApp(api PlatformAPI, leaderboardSvc service.LeaderboardService, exporters *factory.RankingExporterFactory, uiCfg config.UIConfig, exportDir string, relogin func(ctx context.Context) error, log loggerv2.Logger) App {
	styles := DefaultStyles()
	return App{
		log:         log,
		styles:      styles,
		relogin:     relogin,
		contests:    NewContestsPageModel(api, uiCfg.PageSize, styles, log),
		leaderboard: NewLeaderboardPageModel(leaderboardSvc, exporters, exportDir, uiCfg.PageSize, styles, log),
		blogs:       NewBlogsPageModel(api, styles, log),
		groups:      NewGroupsPageModel(api, styles, log),
	}
}

// RefreshSnapshotMsg 后台刷新任务经 Program.Send 注入事件循环
func RefreshSnapshotMsg(snapshot job.ContestSnapshot) tea.Msg {
	return refreshSnapshotMsg(snapshot)
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.contests.Init(),
		a.leaderboard.Init(),
		a.blogs.Init(),
		a.groups.Init(),
		clockTickCmd(),
	)
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (result tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			a.crashed = true
			a.crashInfo = fmt.Sprint(r)
			a.log.Error("page update panicked",
				logger.String("panic", a.crashInfo),
				logger.String("stack", string(debug.Stack())),
			)
			result, cmd = a, nil
		}
	}()

	// 会话失效属于整站状态, 转入重新登录面板.
	// 消息仍照常路由, 乐观变更的回滚与忙标志清理不能跳过.
	if err := dataErrFrom(msg); err != nil && httptool.IsAuthError(err) {
		a.sessionExpired = true
		a.sessionErr = httptool.UserMessage(err)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case reloginResultMsg:
		if msg.err != nil {
			a.sessionErr = httptool.UserMessage(msg.err)
			return a, nil
		}
		a.sessionExpired = false
		a.sessionErr = ""
		return a, a.Init()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !a.inputActive() {
				a.close()
				return a, tea.Quit
			}
		}
		if a.sessionExpired {
			if msg.String() == "enter" {
				return a, a.reloginCmd()
			}
			return a, nil
		}
		if a.crashed {
			if msg.String() == "r" {
				// 恢复面板重载: 丢弃崩溃页状态, 全量重新拉取
				a.crashed = false
				a.crashInfo = ""
				return a, a.Init()
			}
			return a, nil
		}
		if !a.inputActive() {
			switch msg.String() {
			case "1":
				a.active = pageContests
				return a, nil
			case "2":
				a.active = pageLeaderboard
				return a, nil
			case "3":
				a.active = pageBlogs
				return a, nil
			case "4":
				a.active = pageGroups
				return a, nil
			}
		}
		return a.routeToActive(msg)

	case clockTickMsg:
		var pageCmd tea.Cmd
		a.contests, pageCmd = a.contests.Update(msg)
		return a, tea.Batch(pageCmd, clockTickCmd())

	case refreshSnapshotMsg:
		var contestsCmd, leaderboardCmd tea.Cmd
		a.contests, contestsCmd = a.contests.Update(msg)
		a.leaderboard, leaderboardCmd = a.leaderboard.Update(msg)
		return a, tea.Batch(contestsCmd, leaderboardCmd)

	case contestDataMsg:
		// 比赛清单同时喂给题目页与排行榜页(后者用于解析比赛 id)
		var contestsCmd, leaderboardCmd tea.Cmd
		a.contests, contestsCmd = a.contests.Update(msg)
		a.leaderboard, leaderboardCmd = a.leaderboard.Update(msg)
		return a, tea.Batch(contestsCmd, leaderboardCmd)

	case searchTickMsg:
		var pageCmd tea.Cmd
		a.contests, pageCmd = a.contests.Update(msg)
		return a, pageCmd

	case leaderboardDataMsg, exportDoneMsg:
		var pageCmd tea.Cmd
		a.leaderboard, pageCmd = a.leaderboard.Update(msg)
		return a, pageCmd

	case groupDataMsg, mutationResultMsg, deleteGroupRequestMsg:
		var pageCmd tea.Cmd
		a.groups, pageCmd = a.groups.Update(msg)
		return a, pageCmd

	case blogDataMsg, blogMutationResultMsg, deleteBlogRequestMsg:
		var pageCmd tea.Cmd
		a.blogs, pageCmd = a.blogs.Update(msg)
		return a, pageCmd

	case noticeExpireMsg:
		// token 全局唯一, 广播是安全的
		var leaderboardCmd, blogsCmd, groupsCmd tea.Cmd
		a.leaderboard, leaderboardCmd = a.leaderboard.Update(msg)
		a.blogs, blogsCmd = a.blogs.Update(msg)
		a.groups, groupsCmd = a.groups.Update(msg)
		return a, tea.Batch(leaderboardCmd, blogsCmd, groupsCmd)
	}

	return a, nil
}

// dataErrFrom 取出数据消息携带的远端错误(若有)
func dataErrFrom(msg tea.Msg) error {
	switch msg := msg.(type) {
	case contestDataMsg:
		return msg.err
	case groupDataMsg:
		return msg.err
	case blogDataMsg:
		return msg.err
	case leaderboardDataMsg:
		return msg.err
	case mutationResultMsg:
		return msg.err
	case blogMutationResultMsg:
		return msg.err
	}
	return nil
}

func (a App) reloginCmd() tea.Cmd {
	relogin := a.relogin
	return func() tea.Msg {
		if relogin == nil {
			return reloginResultMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return reloginResultMsg{err: relogin(ctx)}
	}
}

// inputActive 文本输入或弹层激活时数字/退出键让位给页面
func (a App) inputActive() bool {
	switch a.active {
	case pageContests:
		return a.contests.search.Focused()
	case pageBlogs:
		return a.blogs.formMode != blogFormNone || a.blogs.confirm.Active()
	case pageGroups:
		return a.groups.confirm.Active()
	default:
		return false
	}
}

func (a App) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var pageCmd tea.Cmd
	switch a.active {
	case pageContests:
		a.contests, pageCmd = a.contests.Update(msg)
	case pageLeaderboard:
		a.leaderboard, pageCmd = a.leaderboard.Update(msg)
	case pageBlogs:
		a.blogs, pageCmd = a.blogs.Update(msg)
	case pageGroups:
		a.groups, pageCmd = a.groups.Update(msg)
	}
	return a, pageCmd
}

func (a App) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("page render panicked",
				logger.String("panic", fmt.Sprint(r)),
				logger.String("stack", string(debug.Stack())),
			)
			out = a.recoveryView(fmt.Sprint(r))
		}
	}()

	if a.crashed {
		return a.recoveryView(a.crashInfo)
	}
	if a.sessionExpired {
		return a.sessionView()
	}

	header := a.tabs()
	var body string
	switch a.active {
	case pageContests:
		body = a.contests.View()
	case pageLeaderboard:
		body = a.leaderboard.View()
	case pageBlogs:
		body = a.blogs.View()
	case pageGroups:
		body = a.groups.View()
	}
	return header + "\n" + body
}

func (a App) tabs() string {
	labels := []string{"1 Challenges", "2 Leaderboard", "3 Blogs", "4 Groups"}
	out := ""
	for i, label := range labels {
		if page(i) == a.active {
			out += a.styles.TabActive.Render(label)
		} else {
			out += a.styles.TabIdle.Render(label)
		}
	}
	return out
}

// sessionView 会话过期面板, 重新登录成功后全量重载
func (a App) sessionView() string {
	return a.styles.Modal.Render(fmt.Sprintf(
		"%s\n\n%s\n\n[enter] sign in again  [q] quit",
		a.styles.Error.Render("session expired"), a.sessionErr))
}

// recoveryView 崩溃恢复面板: 展示原因并提供重载入口
func (a App) recoveryView(info string) string {
	return a.styles.Modal.Render(fmt.Sprintf(
		"%s\n\n%s\n\n[r] reload  [q] quit",
		a.styles.Error.Render("something went wrong"), info))
}

func (a *App) close() {
	a.contests.Close()
	a.leaderboard.Close()
	a.blogs.Close()
	a.groups.Close()
}
