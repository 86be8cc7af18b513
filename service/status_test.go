package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/to404hanga/ctf_platform_client/model"
)

func TestResolvePhase(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		start     string
		end       string
		wantPhase model.ContestPhase
		wantLabel string
	}{
		{
			name:      "no window at all",
			start:     "",
			end:       "",
			wantPhase: model.PhaseNone,
			wantLabel: "NO CONTEST",
		},
		{
			name:      "unparseable start keeps scheduled",
			start:     "soon",
			end:       "2025-01-20T00:00:00Z",
			wantPhase: model.PhaseScheduled,
			wantLabel: "SCHEDULED",
		},
		{
			name:      "unparseable end keeps scheduled",
			start:     "2025-01-10T00:00:00Z",
			end:       "later",
			wantPhase: model.PhaseScheduled,
			wantLabel: "SCHEDULED",
		},
		{
			name:      "before start",
			start:     "2025-01-16T00:00:00Z",
			end:       "2025-01-17T00:00:00Z",
			wantPhase: model.PhaseUpcoming,
			wantLabel: "UPCOMING",
		},
		{
			name:      "inside window",
			start:     "2025-01-15T00:00:00Z",
			end:       "2025-01-16T00:00:00Z",
			wantPhase: model.PhaseOngoing,
			wantLabel: "ONGOING",
		},
		{
			name:      "after end",
			start:     "2025-01-10T00:00:00Z",
			end:       "2025-01-11T00:00:00Z",
			wantPhase: model.PhaseEnded,
			wantLabel: "ENDED",
		},
		{
			name:      "start equals end collapses to ended",
			start:     "2025-01-11T00:00:00Z",
			end:       "2025-01-11T00:00:00Z",
			wantPhase: model.PhaseEnded,
			wantLabel: "ENDED",
		},
		{
			name:      "inverted window past end is ended",
			start:     "2025-01-14T00:00:00Z",
			end:       "2025-01-12T00:00:00Z",
			wantPhase: model.PhaseEnded,
			wantLabel: "ENDED",
		},
		{
			name:      "minute precision without seconds",
			start:     "2025-01-15T00:00Z",
			end:       "2025-01-16T00:00Z",
			wantPhase: model.PhaseOngoing,
			wantLabel: "ONGOING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ResolvePhase(now, tt.start, tt.end)
			assert.Equal(t, tt.wantPhase, info.Phase)
			assert.Equal(t, tt.wantLabel, info.Label)
		})
	}
}

func TestResolvePhaseScheduledShowsParsedSide(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	info := ResolvePhase(now, "2025-01-20T00:00:00Z", "garbage")
	assert.Equal(t, model.PhaseScheduled, info.Phase)
	assert.Equal(t, "Starts 2025-01-20 00:00", info.TimingPrimary)

	info = ResolvePhase(now, "garbage", "2025-01-20T00:00:00Z")
	assert.Equal(t, model.PhaseScheduled, info.Phase)
	assert.Equal(t, "Ends 2025-01-20 00:00", info.TimingPrimary)
}

func TestResolvePhaseBoundaries(t *testing.T) {
	start := "2025-01-15T12:00:00Z"
	end := "2025-01-16T12:00:00Z"

	atStart := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, model.PhaseOngoing, ResolvePhase(atStart, start, end).Phase, "window start is inclusive")

	atEnd := time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, model.PhaseEnded, ResolvePhase(atEnd, start, end).Phase, "window end is exclusive")
}

func TestAnnotateChallenges(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	contests := []model.Contest{
		{ID: 1, Name: "Alpha", StartTime: "2025-01-15T00:00:00Z", EndTime: "2025-01-16T00:00:00Z"},
	}
	one := uint64(1)
	missing := uint64(99)
	challenges := []model.Challenge{
		{ID: 10, Title: "a", ContestID: &one},
		{ID: 11, Title: "b"},
		{ID: 12, Title: "c", ContestID: &missing},
	}

	annotated := AnnotateChallenges(now, challenges, contests)
	assert.Len(t, annotated, 3)

	assert.Equal(t, "1", annotated[0].ContestKey)
	assert.Equal(t, "Alpha", annotated[0].ContestLabel)
	assert.Equal(t, model.PhaseOngoing, annotated[0].Phase.Phase)

	// 无比赛与悬空引用都归入哨兵分组
	assert.Equal(t, NoContestKey, annotated[1].ContestKey)
	assert.Equal(t, model.PhaseNone, annotated[1].Phase.Phase)
	assert.Equal(t, NoContestKey, annotated[2].ContestKey)
}
