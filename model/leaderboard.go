package model

// LeaderboardRow 排行榜行的线上形态, 两种信封共用.
// 字段大量可缺省, 归一化时按回退链取值.
type LeaderboardRow struct {
	Rank             *int            `json:"rank"`
	User             *LeaderboardRef `json:"user"`
	UserID           *uint64         `json:"user_id"`
	Username         string          `json:"username"`
	TotalScore       *int            `json:"total_score"`
	Score            *int            `json:"score"`
	Solved           *int            `json:"solved"`
	LastSolvedAt     *string         `json:"last_solved_at"`
	LastSubmissionAt *string         `json:"last_submission_at"`
}

type LeaderboardRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type LeaderboardContest struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// LeaderboardEntry 归一化后的排行榜条目, 每次拉取整体重建
type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	UserID           uint64  `json:"user_id"`
	Username         string  `json:"username"`
	Score            int     `json:"score"`
	Solved           int     `json:"solved"`
	LastSubmissionAt *string `json:"last_submission_at"`
	ContestID        *uint64 `json:"contest_id"`
	ContestName      string  `json:"contest_name"`
}

// CanonicalLeaderboard 无论信封形态如何, 内部只有这一种表示
type CanonicalLeaderboard struct {
	Entries  []LeaderboardEntry `json:"entries"`
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
}
