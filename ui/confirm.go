package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel 破坏性操作前的确认弹层. accept 在用户确认时才执行,
// 乐观变更由它触发, 所以"确认先于快照"天然成立.
type confirmModel struct {
	active bool
	prompt string
	accept func() tea.Cmd
	styles Styles
}

func newConfirmModel(styles Styles) confirmModel {
	return confirmModel{styles: styles}
}

func (c *confirmModel) Ask(prompt string, accept func() tea.Cmd) {
	c.active = true
	c.prompt = prompt
	c.accept = accept
}

func (c *confirmModel) Active() bool {
	return c.active
}

// HandleKey 弹层激活时拦截按键: y/enter 确认, 其余取消
func (c *confirmModel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if !c.active {
		return nil
	}
	defer func() {
		c.active = false
		c.accept = nil
	}()

	switch msg.String() {
	case "y", "enter":
		if c.accept != nil {
			return c.accept()
		}
	}
	return nil
}

func (c *confirmModel) View() string {
	if !c.active {
		return ""
	}
	return c.styles.Modal.Render(c.prompt + "\n\n[y] confirm    [n] cancel")
}
