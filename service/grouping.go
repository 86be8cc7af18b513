package service

import (
	"sort"
	"strings"

	"github.com/to404hanga/ctf_platform_client/model"
)

const (
	NoContestKey   = "no-contest"
	NoContestLabel = "No Contest"
)

// SplitByPhase 将可见页切成三个定序桶: 进行中 / 未开始 / 其他(已结束+无比赛).
// 桶的展示顺序固定, 与桶大小无关(允许为空).
// 分桶在分页之后进行, 输入是已切好的当前页.
func SplitByPhase(items []model.AnnotatedChallenge) (ongoing, upcoming, other []model.AnnotatedChallenge) {
	for _, item := range items {
		switch item.Phase.Phase {
		case model.PhaseOngoing:
			ongoing = append(ongoing, item)
		case model.PhaseUpcoming, model.PhaseScheduled:
			upcoming = append(upcoming, item)
		default:
			other = append(other, item)
		}
	}
	return ongoing, upcoming, other
}

// GroupByContest 将单个状态桶按父比赛聚合为有序分组:
//   - 分组键为父比赛 id, 没有父比赛时用哨兵 no-contest
//   - 命名分组按标签升序(不区分大小写), "No Contest" 恒排最后
//   - 无丢失无重复: 所有分组条目数之和等于输入长度
func GroupByContest(items []model.AnnotatedChallenge) []model.ContestGroup {
	byKey := make(map[string]*model.ContestGroup)
	for _, item := range items {
		group, exists := byKey[item.ContestKey]
		if !exists {
			group = &model.ContestGroup{
				Key:   item.ContestKey,
				Label: item.ContestLabel,
			}
			byKey[item.ContestKey] = group
		}
		group.Entries = append(group.Entries, item)
	}

	groups := make([]model.ContestGroup, 0, len(byKey))
	for _, group := range byKey {
		groups = append(groups, *group)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Key == NoContestKey {
			return false
		}
		if groups[j].Key == NoContestKey {
			return true
		}
		li, lj := strings.ToLower(groups[i].Label), strings.ToLower(groups[j].Label)
		if li != lj {
			return li < lj
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}
