package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testItem struct {
	Title    string
	Category string
}

func newTestQuery(pageSize int, items []testItem) *ListQuery[testItem] {
	q := NewListQuery(pageSize, func(item testItem) []string {
		return []string{item.Title, item.Category}
	})
	q.SetItems(items)
	return q
}

func makeItems(n int) []testItem {
	items := make([]testItem, 0, n)
	for i := 0; i < n; i++ {
		category := "web"
		if i%2 == 1 {
			category = "pwn"
		}
		items = append(items, testItem{Title: fmt.Sprintf("challenge-%02d", i), Category: category})
	}
	return items
}

func TestListQueryPagination(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	page, meta := q.Apply()
	assert.Len(t, page, 10)
	assert.Equal(t, 25, meta.Count)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	q.SetPage(3)
	page, meta = q.Apply()
	assert.Len(t, page, 5)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestListQuerySetPageClamps(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	q.SetPage(0)
	assert.Equal(t, 1, q.Page())

	q.SetPage(99)
	assert.Equal(t, 3, q.Page())
}

func TestListQueryShrinkResetsToFirstPage(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	q.SetPage(3)
	// 数据刷新把总量缩到当前页之外
	q.SetItems(makeItems(5))

	page, meta := q.Apply()
	assert.Equal(t, 1, meta.Page)
	assert.Len(t, page, 5)
}

func TestListQueryFilterAndSearchCompose(t *testing.T) {
	q := newTestQuery(10, makeItems(20))
	defer q.Close()

	q.SetFilter("category", func(item testItem) bool {
		return item.Category == "web"
	})
	q.SetSearch("challenge-0")
	time.Sleep(SearchDebounceDelay + 50*time.Millisecond)

	page, meta := q.Apply()
	// web 类且标题含 challenge-0: 00 02 04 06 08
	assert.Equal(t, 5, meta.Count)
	for _, item := range page {
		assert.Equal(t, "web", item.Category)
		assert.Contains(t, item.Title, "challenge-0")
	}
}

func TestListQuerySearchResetsPageImmediately(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	q.SetPage(3)
	q.SetSearch("challenge")
	assert.Equal(t, 1, q.Page(), "page resets on keystroke, not on debounce commit")
	assert.Equal(t, "", q.DebouncedTerm(), "term commits only after the quiet period")
}

func TestListQuerySearchDebounceCollapses(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	for _, term := range []string{"c", "ch", "cha", "chal", "challenge-01"} {
		q.SetSearch(term)
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(SearchDebounceDelay + 80*time.Millisecond)

	assert.Equal(t, "challenge-01", q.DebouncedTerm())
	_, meta := q.Apply()
	assert.Equal(t, 1, meta.Count)
}

func TestListQuerySameTermIsNoop(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	q.SetSearch("web")
	time.Sleep(SearchDebounceDelay + 50*time.Millisecond)
	q.SetPage(1)

	// 相同词重复提交不得再次触发页码重置或防抖
	q.SetSearch("web")
	assert.Equal(t, "web", q.DebouncedTerm())
}

func TestListQueryApplyIdempotent(t *testing.T) {
	q := newTestQuery(10, makeItems(25))
	defer q.Close()

	first, firstMeta := q.Apply()
	second, secondMeta := q.Apply()
	assert.Equal(t, first, second)
	assert.Equal(t, firstMeta, secondMeta)
}

func TestListQueryClearFilter(t *testing.T) {
	q := newTestQuery(10, makeItems(20))
	defer q.Close()

	q.SetFilter("category", func(item testItem) bool { return item.Category == "pwn" })
	_, meta := q.Apply()
	assert.Equal(t, 10, meta.Count)

	q.ClearFilter("category")
	_, meta = q.Apply()
	assert.Equal(t, 20, meta.Count)
}
