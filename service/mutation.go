package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// NoticeTTL 成功提示自动消失时间
const NoticeTTL = 3400 * time.Millisecond

type NoticeKind int8

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice 瞬态提示行, 零值表示无事发生
type Notice struct {
	Kind NoticeKind
	Text string
}

func (n Notice) Empty() bool {
	return n.Kind == NoticeNone
}

// Mutator 乐观变更协议: 确认 -> 快照并本地先行 -> 远端确认.
// 远端失败时精确恢复快照. 确认门禁由视图层的确认弹层完成,
// Begin 只在用户确认之后调用.
//
// 互斥粒度是整张列表(每个列表视图一个 Mutator, 不是每行一个):
// busy 期间新的破坏性请求被静默忽略, 不排队也不报错.
//
// 仅允许在拥有它的视图的事件循环内调用, 无内部加锁.
type Mutator[S any] struct {
	busy        bool
	snapshot    S
	restore     func(S)
	successText string
	validate    *validator.Validate
	log         loggerv2.Logger
}

func NewMutator[S any](log loggerv2.Logger) *Mutator[S] {
	return &Mutator[S]{
		validate: validator.New(),
		log:      log,
	}
}

func (m *Mutator[S]) Busy() bool {
	return m.busy
}

// Begin 校验入参, 通过后拍快照并同步应用本地变更.
// 返回 false 表示没有任何状态被触碰(busy 静默忽略, 或校验失败,
// 校验失败同时带回错误提示).
func (m *Mutator[S]) Begin(ctx context.Context, param any, snapshot func() S, apply func(), restore func(S), successText string) (bool, Notice) {
	if m.busy {
		return false, Notice{}
	}
	if param != nil {
		if err := m.validate.Struct(param); err != nil {
			text := "invalid input"
			if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
				text = fmt.Sprintf("invalid input: %s", fieldErrs[0].Field())
			}
			m.log.WarnContext(ctx, "Mutator.Begin rejected at validate", logger.Error(err))
			return false, Notice{Kind: NoticeError, Text: text}
		}
	}

	m.snapshot = snapshot()
	m.restore = restore
	m.successText = successText
	m.busy = true
	apply()
	return true, Notice{}
}

// Resolve 远端结果回填: 失败恢复快照并给出提取后的错误文案,
// 成功给出瞬态成功提示. 调用方负责先用 staleguard 票据过滤迟到结果,
// 以及对 AuthError 走跳转而非行内提示.
func (m *Mutator[S]) Resolve(ctx context.Context, err error) Notice {
	if !m.busy {
		return Notice{}
	}
	m.busy = false

	if err != nil {
		if m.restore != nil {
			m.restore(m.snapshot)
		}
		m.log.WarnContext(ctx, "Mutator.Resolve rolled back", logger.Error(err))
		return Notice{Kind: NoticeError, Text: httptool.UserMessage(err)}
	}
	return Notice{Kind: NoticeSuccess, Text: m.successText}
}
