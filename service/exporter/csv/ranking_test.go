package csv

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/ctf_platform_client/model"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func TestCSVRankingExporterExport(t *testing.T) {
	lastAt := "2026-08-20 12:00:00"
	canonical := &model.CanonicalLeaderboard{
		Entries: []model.LeaderboardEntry{
			{Rank: 1, Username: "player", Score: 425, Solved: 5, LastSubmissionAt: &lastAt},
			{Rank: 2, Username: "guest", Score: 50, Solved: 1},
		},
		Count: 2,
	}

	var buf bytes.Buffer
	e := NewCSVRankingExporter(loggerv2.NewZapContextLogger(zap.NewNop()))
	require.NoError(t, e.Export(context.Background(), canonical, &buf))

	records, err := stdcsv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"排名", "用户名", "得分", "解题数", "最近提交时间"}, records[0])
	assert.Equal(t, []string{"1", "player", "425", "5", lastAt}, records[1])
	// 无提交时间的行留空列
	assert.Equal(t, []string{"2", "guest", "50", "1", ""}, records[2])
}

func TestCSVRankingExporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	e := NewCSVRankingExporter(loggerv2.NewZapContextLogger(zap.NewNop()))
	require.NoError(t, e.Export(context.Background(), &model.CanonicalLeaderboard{}, &buf))

	records, err := stdcsv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
