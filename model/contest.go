package model

type ContestType string

const (
	ContestTypePractice    ContestType = "practice"    // 练习赛
	ContestTypeCompetition ContestType = "competition" // 正式赛
)

// Contest 时间窗口实体, 由外部 API 持有, 客户端只读
type Contest struct {
	ID        uint64      `json:"id"`
	Name      string      `json:"name"`
	StartTime string      `json:"start_time"` // ISO 字符串, 可能为空或非法, 由 service.ResolvePhase 解析
	EndTime   string      `json:"end_time"`
	Type      ContestType `json:"type"`
}

type ContestPhase int8

const (
	PhaseNone      ContestPhase = 0 // 无比赛窗口
	PhaseScheduled ContestPhase = 1 // 窗口无法解析, 只展示可解析的一侧
	PhaseUpcoming  ContestPhase = 2 // 未开始
	PhaseOngoing   ContestPhase = 3 // 进行中
	PhaseEnded     ContestPhase = 4 // 已结束
)

// PhaseInfo 每次渲染根据当前时钟重算, 不持久化
type PhaseInfo struct {
	Phase           ContestPhase `json:"phase"`
	Label           string       `json:"label"`
	Badge           string       `json:"badge"`
	TimingPrimary   string       `json:"timing_primary"`
	TimingSecondary string       `json:"timing_secondary"`
}
