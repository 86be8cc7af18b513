package api

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/gintool"
	"github.com/to404hanga/ctf_platform_client/pkg/httptool"
	"github.com/to404hanga/ctf_platform_client/service"
	"github.com/to404hanga/ctf_platform_client/web"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := loggerv2.NewZapContextLogger(zap.NewNop())

	store := web.NewStore()
	jwtHandler := web.NewJWTHandler("test-secret")

	engine := gin.New()
	engine.Use(
		gintool.ContextMiddleware(),
		jwtHandler.Middleware(log),
	)
	web.NewAuthHandler(store, jwtHandler, log).Register(engine)
	web.NewContestHandler(store, log).Register(engine)
	web.NewChallengeHandler(store, log).Register(engine)
	web.NewBlogHandler(store, log).Register(engine)
	web.NewLeaderboardHandler(store, log).Register(engine)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(config.APIConfig{BaseURL: baseURL, TimeoutSeconds: 5}, loggerv2.NewZapContextLogger(zap.NewNop()))
}

func login(t *testing.T, client *Client) {
	t.Helper()
	_, err := client.Login(context.Background(), model.LoginParam{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
}

func TestClientLogin(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)

	resp, err := client.Login(context.Background(), model.LoginParam{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Username)

	_, err = client.GetContestList(context.Background())
	assert.NoError(t, err, "session token carries over to subsequent requests")
}

func TestClientLoginBadCredentials(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)

	_, err := client.Login(context.Background(), model.LoginParam{Username: "admin", Password: "nope"})
	require.Error(t, err)
	assert.True(t, httptool.IsAuthError(err))
}

func TestClientUnauthenticatedRequest(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)

	_, err := client.GetContestList(context.Background())
	require.Error(t, err)
	assert.True(t, httptool.IsAuthError(err))
	assert.Equal(t, "session expired", httptool.UserMessage(err))
}

func TestClientGetContestAndChallengeList(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	login(t, client)

	contests, err := client.GetContestList(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, contests)

	challenges, err := client.GetChallengeList(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, challenges)
}

func TestClientDeleteGroupRejectedWhileOngoing(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	login(t, client)

	// 分组 10 的比赛正在进行, 服务端拒绝并给出可展示文案
	err := client.DeleteGroup(context.Background(), model.DeleteGroupParam{ID: 10})
	require.Error(t, err)
	assert.False(t, httptool.IsAuthError(err))
	assert.Equal(t, "Group has active contest", httptool.UserMessage(err))
}

func TestClientBlogRoundtrip(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	login(t, client)

	before, err := client.GetBlogList(context.Background())
	require.NoError(t, err)

	require.NoError(t, client.CreateBlog(context.Background(), model.CreateBlogParam{
		Title:   "httptest post",
		Content: "written during the integration test",
	}))

	after, err := client.GetBlogList(context.Background())
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	var created model.Blog
	for _, blog := range after {
		if blog.Title == "httptest post" {
			created = blog
		}
	}
	require.NotZero(t, created.ID)
	assert.Equal(t, "admin", created.Author)

	title := "renamed"
	require.NoError(t, client.UpdateBlog(context.Background(), model.UpdateBlogParam{ID: created.ID, Title: &title}))
	require.NoError(t, client.DeleteBlog(context.Background(), model.DeleteBlogParam{ID: created.ID}))

	err = client.DeleteBlog(context.Background(), model.DeleteBlogParam{ID: created.ID})
	require.Error(t, err)
}

func TestClientPracticeRankingNormalizes(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	login(t, client)

	payload, err := client.GetPracticeRanking(context.Background(), 1, 2)
	require.NoError(t, err)

	canonical, err := service.NormalizeLeaderboard(payload, service.PracticeMode{})
	require.NoError(t, err)
	assert.Equal(t, 3, canonical.Count)
	require.Len(t, canonical.Entries, 2)
	assert.NotNil(t, canonical.Next)
	assert.Nil(t, canonical.Previous)
	assert.Equal(t, 1, canonical.Entries[0].Rank)
}

func TestClientContestRankingNormalizes(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	login(t, client)

	payload, err := client.GetContestRanking(context.Background(), 1)
	require.NoError(t, err)

	mode := service.CompetitionMode{ContestID: 1, ContestName: "Spring Qualifier"}
	canonical, err := service.NormalizeLeaderboard(payload, mode)
	require.NoError(t, err)
	require.NotEmpty(t, canonical.Entries)

	entry := canonical.Entries[0]
	assert.Equal(t, "player", entry.Username)
	assert.Equal(t, 300, entry.Score, "total_score feeds the score fallback chain")
	require.NotNil(t, entry.ContestID)
	assert.Equal(t, uint64(1), *entry.ContestID)
}

func TestClientContestRankingNotFound(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)
	login(t, client)

	_, err := client.GetContestRanking(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, "contest not found", httptool.UserMessage(err))

	// 重试外壳不得吞掉结构化错误
	apiErr, ok := httptool.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
}

func TestClientFetchAuthErrorSurvivesRetryWrapper(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, srv.URL)

	// 未登录的 GET 走重试路径, 错误链必须原样穿透
	_, err := client.GetPracticeRanking(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, httptool.IsAuthError(err))
	assert.Equal(t, "session expired", httptool.UserMessage(err))
}
