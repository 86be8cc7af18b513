package httptool

import "errors"

type Kind int8

const (
	KindValidation Kind = iota // 本地校验失败, 未发出请求
	KindBadRequest             // 4xx, 行内提示
	KindAuth                   // 401/403, 触发跳转登录而非行内提示
	KindServer                 // 5xx, 行内提示
	KindNetwork                // 无响应/超时
)

// APIError 客户端统一错误, Message 已按提取契约处理, 可直接展示.
// Cause 留存底层错误, 只进日志.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsAuthError 判断是否需要跳转登录
func IsAuthError(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == KindAuth
}

// UserMessage 任意错误到展示文案, 非 APIError 原样透出
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Message
	}
	return err.Error()
}
