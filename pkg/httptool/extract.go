package httptool

import (
	json "github.com/bytedance/sonic"
)

// messageFields 错误信封字段探测顺序, 命中即原样使用
var messageFields = []string{"detail", "error", "message", "msg", "non_field_errors"}

// ExtractMessage 按统一契约从错误载荷提取文案:
// 依次探测 messageFields (字符串或数组首元素), 否则按状态码分类回退.
func ExtractMessage(status int, body []byte) string {
	if len(body) > 0 {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err == nil {
			for _, field := range messageFields {
				v, exists := payload[field]
				if !exists {
					continue
				}
				switch t := v.(type) {
				case string:
					if t != "" {
						return t
					}
				case []any:
					if len(t) > 0 {
						if s, ok := t[0].(string); ok && s != "" {
							return s
						}
					}
				}
			}
		}
	}

	switch {
	case status == 400:
		return "invalid input"
	case status == 401:
		return "session expired"
	case status == 403:
		return "forbidden"
	case status == 404:
		return "not found"
	case status >= 500:
		return "server error"
	}
	return "request failed"
}

// FromResponse 由非 2xx 响应构造 APIError
func FromResponse(status int, body []byte) *APIError {
	kind := KindBadRequest
	switch {
	case status == 401 || status == 403:
		kind = KindAuth
	case status >= 500:
		kind = KindServer
	}
	return &APIError{
		Kind:    kind,
		Status:  status,
		Message: ExtractMessage(status, body),
	}
}

// FromTransport 传输层失败(无响应/超时)构造 APIError.
// 展示文案固定, 原始错误挂在 Cause 上供日志使用.
func FromTransport(err error) *APIError {
	return &APIError{
		Kind:    KindNetwork,
		Message: "connectivity error",
		Cause:   err,
	}
}
