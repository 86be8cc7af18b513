package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
)

// stubBlogAPI 可注入删除结果的博客远端替身
type stubBlogAPI struct {
	stubPlatformAPI
	deleteBlogErr error
}

func (s *stubBlogAPI) DeleteBlog(ctx context.Context, param model.DeleteBlogParam) error {
	return s.deleteBlogErr
}

func seededBlogsPage(t *testing.T, api PlatformAPI) BlogsPageModel {
	t.Helper()
	page := NewBlogsPageModel(api, DefaultStyles(), testLogger())
	page, _ = page.Update(blogDataMsg{
		ticket: page.guard.Begin(),
		blogs: []model.Blog{
			{ID: 1, Title: "first"},
			{ID: 2, Title: "second"},
		},
	})
	return page
}

func TestBlogsDeleteRollbackSurvivesConcurrentRefresh(t *testing.T) {
	api := &stubBlogAPI{
		deleteBlogErr: httptool.FromResponse(409, []byte(`{"error":"blog is locked"}`)),
	}
	page := seededBlogsPage(t, api)

	page, deleteCmd := page.Update(deleteBlogRequestMsg{id: 1})
	require.NotNil(t, deleteCmd)
	require.Len(t, page.state.blogs, 1)

	// 回执落地前刷新一次列表, 不得作废在途变更
	page, _ = page.Update(keyMsg("r"))

	result, ok := deleteCmd().(blogMutationResultMsg)
	require.True(t, ok)
	page, _ = page.Update(result)

	require.Len(t, page.state.blogs, 2, "rejected delete must restore the snapshot")

	// 忙标志已清除, 后续变更照常本地先行
	api.deleteBlogErr = nil
	page, nextCmd := page.Update(deleteBlogRequestMsg{id: 2})
	require.NotNil(t, nextCmd)
	assert.Len(t, page.state.blogs, 1)
}
