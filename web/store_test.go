package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/ctf_platform_client/model"
)

func TestStoreDeleteGroupRejectsWhileContestOngoing(t *testing.T) {
	store := NewStore()
	now := time.Now()

	// 种子数据: 分组 10 挂在进行中的比赛 1 上
	err := store.DeleteGroup(10, now)
	assert.ErrorIs(t, err, ErrGroupActiveContest)

	groups := store.Groups()
	found := false
	for _, group := range groups {
		if group.ID == 10 {
			found = true
		}
	}
	assert.True(t, found, "rejected delete must not remove the group")
}

func TestStoreDeleteGroupAfterContestEnds(t *testing.T) {
	store := NewStore()

	// 把时钟拨到所有比赛都结束之后
	future := time.Now().Add(1000 * time.Hour)
	err := store.DeleteGroup(10, future)
	require.NoError(t, err)

	for _, group := range store.Groups() {
		assert.NotEqual(t, uint64(10), group.ID)
	}
	// 级联: 该分组下的题目一并移除
	for _, challenge := range store.Challenges() {
		assert.NotEqual(t, uint64(10), challenge.GroupID)
	}
}

func TestStoreDeleteGroupNotFound(t *testing.T) {
	store := NewStore()
	assert.ErrorIs(t, store.DeleteGroup(999, time.Now()), ErrNotFound)
}

func TestStoreAuthenticate(t *testing.T) {
	store := NewStore()

	user, err := store.Authenticate("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)

	_, err = store.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = store.Authenticate("nobody", "admin123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestStorePracticePage(t *testing.T) {
	store := NewStore()

	rows, total := store.PracticePage(1, 2)
	assert.Equal(t, 3, total)
	assert.Len(t, rows, 2)

	rows, _ = store.PracticePage(2, 2)
	assert.Len(t, rows, 1)

	rows, _ = store.PracticePage(99, 2)
	assert.Empty(t, rows)
}

func TestStoreBlogCRUD(t *testing.T) {
	store := NewStore()
	initial := len(store.Blogs())

	blog := store.CreateBlog(model.CreateBlogParam{Title: "New Post", Content: "body"}, "admin")
	assert.NotZero(t, blog.ID)
	assert.Len(t, store.Blogs(), initial+1)

	title := "Renamed"
	require.NoError(t, store.UpdateBlog(model.UpdateBlogParam{ID: blog.ID, Title: &title}))
	found := false
	for _, b := range store.Blogs() {
		if b.ID == blog.ID {
			found = true
			assert.Equal(t, "Renamed", b.Title)
		}
	}
	assert.True(t, found)

	require.NoError(t, store.DeleteBlog(blog.ID))
	assert.Len(t, store.Blogs(), initial)
	assert.ErrorIs(t, store.DeleteBlog(blog.ID), ErrNotFound)
}
