package model

type Challenge struct {
	ID        uint64  `json:"id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Points    int     `json:"points"`
	GroupID   uint64  `json:"group_id"`
	ContestID *uint64 `json:"contest_id"` // 为空表示不属于任何比赛
}

// Group 题目分组, 管理端可删除; 所属比赛进行中时删除会被后端拒绝
type Group struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	ContestID      uint64 `json:"contest_id"`
	ChallengeCount int    `json:"challenge_count"`
}

// AnnotatedChallenge 基础题目加派生事实, 每次渲染重算
type AnnotatedChallenge struct {
	Challenge    Challenge
	Phase        PhaseInfo
	ContestKey   string
	ContestLabel string
}

// ContestGroup 按父比赛聚合后的渲染分组
type ContestGroup struct {
	Key     string
	Label   string
	Entries []AnnotatedChallenge
}

type DeleteGroupParam struct {
	ID uint64 `json:"id" validate:"required"`
}
