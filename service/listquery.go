package service

import (
	"strings"
	"sync"

	"github.com/to404hanga/ctf_platform_client/model"
)

const DefaultPageSize = 10

// ListQuery 列表视图的检索管道: 搜索/过滤/分页共用一份状态,
// 对相同输入恒产出相同结果.
//
// 约定:
//   - searchTerm 变化立即把页码重置为 1, 过滤重算则等防抖提交
//   - 过滤器变化同样立即重置页码, 且立即生效(不防抖)
//   - 数据刷新把 total 缩到当前页之外时, 下次 Apply 将页码收回 1
type ListQuery[T any] struct {
	mu            sync.Mutex
	items         []T
	searchTerm    string
	debouncedTerm string
	filters       map[string]func(T) bool
	page          int
	pageSize      int
	searchFields  func(T) []string
	debouncer     *Debouncer
	notify        func()
}

// NewListQuery searchFields 给出参与子串匹配的字段值, 为 nil 时搜索不生效
func NewListQuery[T any](pageSize int, searchFields func(T) []string) *ListQuery[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListQuery[T]{
		filters:      make(map[string]func(T) bool),
		page:         1,
		pageSize:     pageSize,
		searchFields: searchFields,
		debouncer:    NewDebouncer(SearchDebounceDelay),
	}
}

// SetNotify 防抖提交完成后的回调(由视图用来触发重渲染)
func (q *ListQuery[T]) SetNotify(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notify = fn
}

func (q *ListQuery[T]) SetItems(items []T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = items
}

// SetSearch 记录搜索词并立即重置页码; debouncedTerm 在静默期后才提交
func (q *ListQuery[T]) SetSearch(term string) {
	q.mu.Lock()
	if term == q.searchTerm {
		q.mu.Unlock()
		return
	}
	q.searchTerm = term
	q.page = 1
	q.mu.Unlock()

	q.debouncer.Schedule(func() {
		q.mu.Lock()
		q.debouncedTerm = term
		fn := q.notify
		q.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

func (q *ListQuery[T]) SearchTerm() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.searchTerm
}

func (q *ListQuery[T]) DebouncedTerm() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.debouncedTerm
}

// SetFilter 设置命名过滤谓词并立即重置页码
func (q *ListQuery[T]) SetFilter(name string, pred func(T) bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.filters[name] = pred
	q.page = 1
}

func (q *ListQuery[T]) ClearFilter(name string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, exists := q.filters[name]; !exists {
		return
	}
	delete(q.filters, name)
	q.page = 1
}

// SetPage 收敛到 [1, pageCount]
func (q *ListQuery[T]) SetPage(page int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pageCount := q.pageCountLocked(len(q.filteredLocked()))
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	q.page = page
}

func (q *ListQuery[T]) Page() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page
}

// Apply 计算当前页切片与分页簿记. page 超出刷新后的页数时收回 1.
func (q *ListQuery[T]) Apply() ([]T, model.PageMeta) {
	q.mu.Lock()
	defer q.mu.Unlock()

	filtered := q.filteredLocked()
	total := len(filtered)
	pageCount := q.pageCountLocked(total)
	if q.page > pageCount {
		q.page = 1
	}

	start := (q.page - 1) * q.pageSize
	stop := start + q.pageSize
	if start > total {
		start = total
	}
	if stop > total {
		stop = total
	}

	meta := model.PageMeta{
		Count:    total,
		HasNext:  q.page < pageCount,
		HasPrev:  q.page > 1,
		Page:     q.page,
		PageSize: q.pageSize,
	}
	return filtered[start:stop], meta
}

// Close 取消挂起的防抖, 视图卸载时调用
func (q *ListQuery[T]) Close() {
	q.debouncer.Cancel()
}

// filteredLocked 所有激活过滤器取与, 再叠加防抖后的搜索词子串匹配
// (不区分大小写, 空词匹配一切)
func (q *ListQuery[T]) filteredLocked() []T {
	term := strings.ToLower(q.debouncedTerm)
	out := make([]T, 0, len(q.items))
next:
	for _, item := range q.items {
		for _, pred := range q.filters {
			if !pred(item) {
				continue next
			}
		}
		if term != "" {
			if q.searchFields == nil {
				continue
			}
			matched := false
			for _, field := range q.searchFields(item) {
				if strings.Contains(strings.ToLower(field), term) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func (q *ListQuery[T]) pageCountLocked(total int) int {
	pageCount := (total + q.pageSize - 1) / q.pageSize
	if pageCount < 1 {
		pageCount = 1
	}
	return pageCount
}
