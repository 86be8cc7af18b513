package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
)

// stubPlatformAPI 可注入删除结果的远端替身
type stubPlatformAPI struct {
	deleteGroupErr error
}

var _ PlatformAPI = (*stubPlatformAPI)(nil)

func (s *stubPlatformAPI) GetContestList(ctx context.Context) ([]model.Contest, error) {
	return nil, nil
}

func (s *stubPlatformAPI) GetChallengeList(ctx context.Context) ([]model.Challenge, error) {
	return nil, nil
}

func (s *stubPlatformAPI) GetGroupList(ctx context.Context) ([]model.Group, error) {
	return nil, nil
}

func (s *stubPlatformAPI) DeleteGroup(ctx context.Context, param model.DeleteGroupParam) error {
	return s.deleteGroupErr
}

func (s *stubPlatformAPI) GetBlogList(ctx context.Context) ([]model.Blog, error) {
	return nil, nil
}

func (s *stubPlatformAPI) CreateBlog(ctx context.Context, param model.CreateBlogParam) error {
	return nil
}

func (s *stubPlatformAPI) UpdateBlog(ctx context.Context, param model.UpdateBlogParam) error {
	return nil
}

func (s *stubPlatformAPI) DeleteBlog(ctx context.Context, param model.DeleteBlogParam) error {
	return nil
}

func seededGroupsPage(t *testing.T, api PlatformAPI) GroupsPageModel {
	t.Helper()
	page := NewGroupsPageModel(api, DefaultStyles(), testLogger())
	page, _ = page.Update(groupDataMsg{
		ticket: page.guard.Begin(),
		groups: []model.Group{
			{ID: 1, Name: "alpha"},
			{ID: 2, Name: "beta"},
		},
	})
	return page
}

func TestGroupsDeleteRollbackSurvivesConcurrentRefresh(t *testing.T) {
	api := &stubPlatformAPI{
		deleteGroupErr: httptool.FromResponse(409, []byte(`{"error":"Group has active contest"}`)),
	}
	page := seededGroupsPage(t, api)

	// 本地先行删除
	page, deleteCmd := page.Update(deleteGroupRequestMsg{id: 1})
	require.NotNil(t, deleteCmd)
	require.Len(t, page.state.groups, 1)

	// 回执落地前用户触发了一次列表刷新
	page, _ = page.Update(keyMsg("r"))

	// 远端拒绝的回执此刻才到, 回滚不能因为中途的刷新而丢失
	result, ok := deleteCmd().(mutationResultMsg)
	require.True(t, ok)
	page, _ = page.Update(result)

	require.Len(t, page.state.groups, 2, "rejected delete must restore the snapshot")
	assert.Contains(t, page.notice.View(), "Group has active contest")
}

func TestGroupsMutatorNotWedgedAfterRefresh(t *testing.T) {
	api := &stubPlatformAPI{
		deleteGroupErr: httptool.FromResponse(409, []byte(`{"error":"Group has active contest"}`)),
	}
	page := seededGroupsPage(t, api)

	page, deleteCmd := page.Update(deleteGroupRequestMsg{id: 1})
	require.NotNil(t, deleteCmd)
	page, _ = page.Update(keyMsg("r"))
	page, _ = page.Update(deleteCmd().(mutationResultMsg))

	// 忙标志必须随回执清除: 下一次删除要能正常本地先行
	api.deleteGroupErr = nil
	page, nextCmd := page.Update(deleteGroupRequestMsg{id: 2})
	require.NotNil(t, nextCmd, "a resolved mutator must accept the next mutation")
	require.Len(t, page.state.groups, 1)

	page, _ = page.Update(nextCmd().(mutationResultMsg))
	assert.Len(t, page.state.groups, 1, "successful delete keeps the optimistic state")
}

func TestGroupsDeleteSuccessKeepsAppliedState(t *testing.T) {
	api := &stubPlatformAPI{}
	page := seededGroupsPage(t, api)

	page, deleteCmd := page.Update(deleteGroupRequestMsg{id: 2})
	require.NotNil(t, deleteCmd)
	page, _ = page.Update(deleteCmd().(mutationResultMsg))

	require.Len(t, page.state.groups, 1)
	assert.Equal(t, uint64(1), page.state.groups[0].ID)
	assert.Contains(t, page.notice.View(), "group deleted")
}
