package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/to404hanga/ctf_platform_client/model"
)

func annotatedWith(key, label string, phase model.ContestPhase) model.AnnotatedChallenge {
	return model.AnnotatedChallenge{
		ContestKey:   key,
		ContestLabel: label,
		Phase:        model.PhaseInfo{Phase: phase},
	}
}

func TestSplitByPhase(t *testing.T) {
	items := []model.AnnotatedChallenge{
		annotatedWith("1", "a", model.PhaseOngoing),
		annotatedWith("2", "b", model.PhaseUpcoming),
		annotatedWith("3", "c", model.PhaseScheduled),
		annotatedWith("4", "d", model.PhaseEnded),
		annotatedWith(NoContestKey, NoContestLabel, model.PhaseNone),
	}

	ongoing, upcoming, other := SplitByPhase(items)
	assert.Len(t, ongoing, 1)
	// SCHEDULED 与 UPCOMING 同桶
	assert.Len(t, upcoming, 2)
	assert.Len(t, other, 2)
	assert.Equal(t, len(items), len(ongoing)+len(upcoming)+len(other))
}

func TestGroupByContestOrdering(t *testing.T) {
	items := []model.AnnotatedChallenge{
		annotatedWith(NoContestKey, NoContestLabel, model.PhaseNone),
		annotatedWith("2", "zeta", model.PhaseOngoing),
		annotatedWith("1", "Alpha", model.PhaseOngoing),
		annotatedWith("2", "zeta", model.PhaseOngoing),
	}

	groups := GroupByContest(items)
	assert.Len(t, groups, 3)
	assert.Equal(t, "Alpha", groups[0].Label)
	assert.Equal(t, "zeta", groups[1].Label)
	assert.Equal(t, NoContestKey, groups[2].Key, "No Contest group always sorts last")
}

func TestGroupByContestLossless(t *testing.T) {
	items := []model.AnnotatedChallenge{
		annotatedWith("1", "a", model.PhaseOngoing),
		annotatedWith("2", "b", model.PhaseOngoing),
		annotatedWith("1", "a", model.PhaseOngoing),
		annotatedWith(NoContestKey, NoContestLabel, model.PhaseNone),
		annotatedWith("1", "a", model.PhaseOngoing),
	}

	groups := GroupByContest(items)
	total := 0
	for _, group := range groups {
		total += len(group.Entries)
	}
	assert.Equal(t, len(items), total, "grouping must neither drop nor duplicate entries")
}

func TestGroupByContestEmpty(t *testing.T) {
	assert.Empty(t, GroupByContest(nil))
}
