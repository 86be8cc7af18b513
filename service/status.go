package service

import (
	"strconv"
	"time"

	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/pkg404/gotools/transform"
)

const timingLayout = "2006-01-02 15:04"

// windowLayouts 后端时间串的历史形态, 逐个尝试
var windowLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05",
}

func parseWindowTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range windowLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolvePhase 由墙钟时间和比赛窗口推导生命周期状态. 纯函数, 无内部
// 定时器, 状态迁移靠调用方重新求值.
// 规则按序:
//  1. 完全没有窗口 -> NONE
//  2. start 或 end 解析失败 -> SCHEDULED, 只展示解析成功的一侧,
//     无法比较时不做 ONGOING/ENDED 判断
//  3. now < start -> UPCOMING
//  4. start <= now < end -> ONGOING
//  5. 其余(含 start >= end 的畸形窗口) -> ENDED
//
// start >= end 时一旦 now >= end 即落入 ENDED, 这是刻意选择的策略,
// 不引入额外的畸形状态.
func ResolvePhase(now time.Time, startRaw, endRaw string) model.PhaseInfo {
	if startRaw == "" && endRaw == "" {
		return model.PhaseInfo{
			Phase: model.PhaseNone,
			Label: "NO CONTEST",
			Badge: "none",
		}
	}

	start, startOK := parseWindowTime(startRaw)
	end, endOK := parseWindowTime(endRaw)

	if !startOK || !endOK {
		info := model.PhaseInfo{
			Phase: model.PhaseScheduled,
			Label: "SCHEDULED",
			Badge: "scheduled",
		}
		if startOK {
			info.TimingPrimary = "Starts " + start.Format(timingLayout)
		} else if endOK {
			info.TimingPrimary = "Ends " + end.Format(timingLayout)
		}
		return info
	}

	switch {
	case now.Before(start):
		return model.PhaseInfo{
			Phase:           model.PhaseUpcoming,
			Label:           "UPCOMING",
			Badge:           "upcoming",
			TimingPrimary:   "Starts " + start.Format(timingLayout),
			TimingSecondary: "Ends " + end.Format(timingLayout),
		}
	case now.Before(end):
		return model.PhaseInfo{
			Phase:           model.PhaseOngoing,
			Label:           "ONGOING",
			Badge:           "ongoing",
			TimingPrimary:   "Ends " + end.Format(timingLayout),
			TimingSecondary: "Started " + start.Format(timingLayout),
		}
	default:
		return model.PhaseInfo{
			Phase:           model.PhaseEnded,
			Label:           "ENDED",
			Badge:           "ended",
			TimingPrimary:   "Ended " + end.Format(timingLayout),
			TimingSecondary: "Started " + start.Format(timingLayout),
		}
	}
}

// AnnotateChallenges 为题目列表补充派生事实(状态与父比赛引用).
// 每次渲染基于当前时钟整体重算, 不做增量维护.
func AnnotateChallenges(now time.Time, challenges []model.Challenge, contests []model.Contest) []model.AnnotatedChallenge {
	contestByID := transform.MapFromSlice(contests, func(i int, c model.Contest) (uint64, model.Contest) {
		return c.ID, c
	})

	annotated := make([]model.AnnotatedChallenge, 0, len(challenges))
	for _, ch := range challenges {
		item := model.AnnotatedChallenge{
			Challenge:    ch,
			ContestKey:   NoContestKey,
			ContestLabel: NoContestLabel,
		}
		if ch.ContestID != nil {
			if contest, exists := contestByID[*ch.ContestID]; exists {
				item.Phase = ResolvePhase(now, contest.StartTime, contest.EndTime)
				item.ContestKey = strconv.FormatUint(contest.ID, 10)
				item.ContestLabel = contest.Name
				annotated = append(annotated, item)
				continue
			}
		}
		item.Phase = ResolvePhase(now, "", "")
		annotated = append(annotated, item)
	}
	return annotated
}
