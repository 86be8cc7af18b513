package ui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/service"
	"github.com/to404hanga/ctf_platform_client/service/exporter/factory"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func testLogger() loggerv2.Logger {
	return loggerv2.NewZapContextLogger(zap.NewNop())
}

// recordingRankingService 记录每次拉取携带的模式
type recordingRankingService struct {
	modes []service.LeaderboardMode
}

var _ service.LeaderboardService = (*recordingRankingService)(nil)

func (s *recordingRankingService) Fetch(ctx context.Context, mode service.LeaderboardMode, page, pageSize int) (*model.CanonicalLeaderboard, error) {
	s.modes = append(s.modes, mode)
	return &model.CanonicalLeaderboard{}, nil
}

func newLeaderboardPage(t *testing.T, svc service.LeaderboardService) LeaderboardPageModel {
	t.Helper()
	log := testLogger()
	return NewLeaderboardPageModel(svc, factory.NewRankingExporterFactory(log), t.TempDir(), 10, DefaultStyles(), log)
}

func ongoingCompetition(id uint64, name string) model.Contest {
	now := time.Now()
	return model.Contest{
		ID:        id,
		Name:      name,
		StartTime: now.Add(-time.Hour).Format(time.RFC3339),
		EndTime:   now.Add(time.Hour).Format(time.RFC3339),
		Type:      model.ContestTypeCompetition,
	}
}

func TestLeaderboardDeferredCompetitionNeverFetchesWithoutID(t *testing.T) {
	svc := &recordingRankingService{}
	page := newLeaderboardPage(t, svc)

	// 切到比赛模式, 但还没有任何比赛清单: 拉取必须推迟
	page, cmd := page.Update(keyMsg("m"))
	assert.Nil(t, cmd)
	assert.True(t, page.pendingCompetition)

	// 挂起期间重载不得带着缺失的 id 发请求
	page, cmd = page.Update(keyMsg("r"))
	assert.Nil(t, cmd)
	assert.Empty(t, svc.modes)

	// 翻页键同样不得触发任何拉取
	page, cmd = page.Update(keyMsg("l"))
	assert.Nil(t, cmd)
	assert.Empty(t, svc.modes)

	// 比赛清单到达并解析出进行中的正式赛, 这才放行
	page, cmd = page.Update(contestDataMsg{
		contests: []model.Contest{ongoingCompetition(7, "Autumn Cup")},
	})
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, svc.modes, 1)
	competition, ok := svc.modes[0].(service.CompetitionMode)
	require.True(t, ok)
	assert.Equal(t, uint64(7), competition.ContestID)
	assert.False(t, page.pendingCompetition)
}

func TestLeaderboardPendingReloadRetriesResolution(t *testing.T) {
	svc := &recordingRankingService{}
	page := newLeaderboardPage(t, svc)

	page, _ = page.Update(keyMsg("m"))
	require.True(t, page.pendingCompetition)

	// 快照先送来了进行中的比赛, 之后的重载要能解析出 id
	page, _ = page.Update(refreshSnapshotMsg{
		Contests:  []model.Contest{ongoingCompetition(9, "Night Raid")},
		FetchedAt: time.Now(),
	})

	require.Len(t, svc.modes, 0, "snapshot during pending issues the fetch via command, not inline")
	page, cmd := page.Update(keyMsg("r"))
	if cmd != nil {
		cmd()
	}
	require.NotEmpty(t, svc.modes)
	for _, mode := range svc.modes {
		if competition, ok := mode.(service.CompetitionMode); ok {
			assert.NotZero(t, competition.ContestID)
		}
	}
}

func TestLeaderboardToggleBackFromPendingReturnsToPractice(t *testing.T) {
	svc := &recordingRankingService{}
	page := newLeaderboardPage(t, svc)

	page, _ = page.Update(keyMsg("m"))
	require.True(t, page.pendingCompetition)

	page, cmd := page.Update(keyMsg("m"))
	require.NotNil(t, cmd)
	cmd()

	assert.False(t, page.pendingCompetition)
	require.Len(t, svc.modes, 1)
	_, practice := svc.modes[0].(service.PracticeMode)
	assert.True(t, practice)
}
