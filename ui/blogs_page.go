package ui

import (
	"context"
	"fmt"
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

type blogFormMode int8

const (
	blogFormNone blogFormMode = iota
	blogFormCreate
	blogFormEdit
)

type blogsState struct {
	blogs []model.Blog
}

type deleteBlogRequestMsg struct {
	id uint64
}

// blogMutationResultMsg 本页专属回执, 避免与其他页的变更回执串线
type blogMutationResultMsg struct {
	ticket staleguard.Ticket
	err    error
}

// BlogsPageModel 博客页: 列表 + 新建/编辑表单 + 乐观删除
type BlogsPageModel struct {
	api    PlatformAPI
	log    loggerv2.Logger
	styles Styles

	// 变更回执走独立的 guard, 列表刷新不作废在途变更
	guard    *staleguard.Guard
	mutGuard *staleguard.Guard
	mutator  *service.Mutator[[]model.Blog]
	state    *blogsState

	confirm confirmModel
	notice  noticeModel
	cursor  int

	formMode  blogFormMode
	formID    uint64
	titleIn   textinput.Model
	contentIn textinput.Model
	focusIdx  int

	loading bool
	loadErr string
}

func NewBlogsPageModel(api PlatformAPI, styles Styles, log loggerv2.Logger) BlogsPageModel {
	titleIn := textinput.New()
	titleIn.Placeholder = "title"
	titleIn.CharLimit = 200
	contentIn := textinput.New()
	contentIn.Placeholder = "content"

	return BlogsPageModel{
		api:       api,
		log:       log,
		styles:    styles,
		guard:     new(staleguard.Guard),
		mutGuard:  new(staleguard.Guard),
		mutator:   service.NewMutator[[]model.Blog](log),
		state:     &blogsState{},
		confirm:   newConfirmModel(styles),
		notice:    newNoticeModel(styles),
		titleIn:   titleIn,
		contentIn: contentIn,
	}
}

func (m BlogsPageModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m *BlogsPageModel) fetchCmd() tea.Cmd {
	ticket := m.guard.Begin()
	api := m.api
	m.loading = true
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		blogs, err := api.GetBlogList(ctx)
		return blogDataMsg{ticket: ticket, blogs: blogs, err: err}
	}
}

func (m BlogsPageModel) Update(msg tea.Msg) (BlogsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case blogDataMsg:
		if !msg.ticket.Live() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.loadErr = httptool.UserMessage(msg.err)
			return m, nil
		}
		m.loadErr = ""
		m.state.blogs = msg.blogs
		m.clampCursor()
		return m, nil

	case blogMutationResultMsg:
		if !msg.ticket.Live() {
			return m, nil
		}
		notice := m.mutator.Resolve(context.Background(), msg.err)
		m.clampCursor()
		// 成功的写操作之后重拉一次, 拿到服务端分配的 id 与时间戳
		noticeCmd := m.notice.Set(notice)
		if msg.err == nil {
			fetch := m.fetchCmd()
			return m, tea.Batch(noticeCmd, fetch)
		}
		return m, noticeCmd

	case deleteBlogRequestMsg:
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
		if m.formMode != blogFormNone {
			return m.handleFormKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *BlogsPageModel) handleKey(msg tea.KeyMsg) (BlogsPageModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.blogs)-1 {
			m.cursor++
		}
	case "r":
		cmd := m.fetchCmd()
		return *m, cmd
	case "n":
		m.openForm(blogFormCreate, nil)
		return *m, textinput.Blink
	case "e":
		if m.cursor < len(m.state.blogs) {
			blog := m.state.blogs[m.cursor]
			m.openForm(blogFormEdit, &blog)
			return *m, textinput.Blink
		}
	case "d":
		if m.cursor >= len(m.state.blogs) {
			return *m, nil
		}
		blog := m.state.blogs[m.cursor]
		m.confirm.Ask(fmt.Sprintf("Delete blog %q?", blog.Title), func() tea.Cmd {
			return func() tea.Msg {
				return deleteBlogRequestMsg{id: blog.ID}
			}
		})
	}
	return *m, nil
}

func (m *BlogsPageModel) openForm(mode blogFormMode, blog *model.Blog) {
	m.formMode = mode
	m.focusIdx = 0
	m.titleIn.SetValue("")
	m.contentIn.SetValue("")
	m.formID = 0
	if blog != nil {
		m.formID = blog.ID
		m.titleIn.SetValue(blog.Title)
		m.contentIn.SetValue(blog.Content)
	}
	m.titleIn.Focus()
	m.contentIn.Blur()
}

func (m *BlogsPageModel) handleFormKey(msg tea.KeyMsg) (BlogsPageModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.formMode = blogFormNone
		return *m, nil
	case "tab":
		m.focusIdx = (m.focusIdx + 1) % 2
		if m.focusIdx == 0 {
			m.contentIn.Blur()
			cmd := m.titleIn.Focus()
			return *m, cmd
		}
		m.titleIn.Blur()
		cmd := m.contentIn.Focus()
		return *m, cmd
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.titleIn, cmd = m.titleIn.Update(msg)
	} else {
		m.contentIn, cmd = m.contentIn.Update(msg)
	}
	return *m, cmd
}

// submitForm 新建/编辑同样走乐观协议: 本地先行, 失败回滚
func (m *BlogsPageModel) submitForm() (BlogsPageModel, tea.Cmd) {
	mode := m.formMode
	m.formMode = blogFormNone
	state := m.state
	title := m.titleIn.Value()
	content := m.contentIn.Value()

	snapshot := func() []model.Blog {
		snap := make([]model.Blog, len(state.blogs))
		copy(snap, state.blogs)
		return snap
	}
	restore := func(snap []model.Blog) {
		state.blogs = snap
	}

	if mode == blogFormCreate {
		param := model.CreateBlogParam{Title: title, Content: content}
		ok, notice := m.mutator.Begin(context.Background(), param, snapshot,
			func() {
				state.blogs = append([]model.Blog{{Title: title, Content: content, CreatedAt: time.Now().Format(time.RFC3339)}}, state.blogs...)
			},
			restore, "blog created")
		if !ok {
			cmd := m.notice.Set(notice)
			return *m, cmd
		}

		ticket := m.mutGuard.Begin()
		api := m.api
		return *m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return blogMutationResultMsg{ticket: ticket, err: api.CreateBlog(ctx, param)}
		}
	}

	id := m.formID
	param := model.UpdateBlogParam{ID: id, Title: &title, Content: &content}
	ok, notice := m.mutator.Begin(context.Background(), param, snapshot,
		func() {
			for i := range state.blogs {
				if state.blogs[i].ID == id {
					state.blogs[i].Title = title
					state.blogs[i].Content = content
					break
				}
			}
		},
		restore, "blog updated")
	if !ok {
		cmd := m.notice.Set(notice)
		return *m, cmd
	}

	ticket := m.mutGuard.Begin()
	api := m.api
	return *m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return blogMutationResultMsg{ticket: ticket, err: api.UpdateBlog(ctx, param)}
	}
}

func (m *BlogsPageModel) beginDelete(id uint64) tea.Cmd {
	param := model.DeleteBlogParam{ID: id}
	state := m.state

	ok, notice := m.mutator.Begin(context.Background(), param,
		func() []model.Blog {
			snap := make([]model.Blog, len(state.blogs))
			copy(snap, state.blogs)
			return snap
		},
		func() {
			kept := state.blogs[:0]
			for _, blog := range state.blogs {
				if blog.ID != id {
					kept = append(kept, blog)
				}
			}
			state.blogs = kept
		},
		func(snap []model.Blog) {
			state.blogs = snap
		},
		"blog deleted")
	if !ok {
		return m.notice.Set(notice)
	}

	ticket := m.mutGuard.Begin()
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		return blogMutationResultMsg{ticket: ticket, err: api.DeleteBlog(ctx, param)}
	}
}

func (m *BlogsPageModel) clampCursor() {
	if m.cursor >= len(m.state.blogs) {
		m.cursor = len(m.state.blogs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m BlogsPageModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Blogs"))
	b.WriteString("\n")

	if m.formMode != blogFormNone {
		action := "New blog"
		if m.formMode == blogFormEdit {
			action = "Edit blog"
		}
		b.WriteString(m.styles.Modal.Render(fmt.Sprintf(
			"%s\n\ntitle:   %s\ncontent: %s\n\n[enter] save  [tab] next field  [esc] cancel",
			action, m.titleIn.View(), m.contentIn.View())))
		b.WriteString("\n")
		return b.String()
	}

	switch {
	case m.loading:
		b.WriteString("loading...\n")
	case m.loadErr != "":
		b.WriteString(m.styles.Error.Render(m.loadErr))
		b.WriteString("\n")
	case len(m.state.blogs) == 0:
		b.WriteString(m.styles.RowDim.Render("no blogs"))
		b.WriteString("\n")
	default:
		for i, blog := range m.state.blogs {
			marker := "  "
			if i == m.cursor {
				marker = "> "
			}
			b.WriteString(m.styles.Row.Render(fmt.Sprintf(
				"%s%-32s %-12s %s", marker, blog.Title, blog.Author, blog.CreatedAt)))
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
	b.WriteString(m.styles.Help.Render("↑/↓ move  n new  e edit  d delete  r reload"))
	b.WriteString("\n")
	return b.String()
}

func (m *BlogsPageModel) Close() {
	m.guard.Close()
	m.mutGuard.Close()
}
