package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ErrUnknownEnvelope 信封形态无法识别. 刻意不做"静默回退为空列表":
// 损坏的载荷伪装成空榜单比一条可见错误更糟.
var ErrUnknownEnvelope = errors.New("unrecognized leaderboard envelope")

// LeaderboardMode 练习/比赛模式的和类型. 比赛模式必须携带比赛 id,
// 在类型层面杜绝"缺 id 的比赛榜请求", 不靠运行期检查.
type LeaderboardMode interface {
	modeTag()
}

type PracticeMode struct{}

func (PracticeMode) modeTag() {}

type CompetitionMode struct {
	ContestID   uint64
	ContestName string
}

func (CompetitionMode) modeTag() {}

// envelopeProbe 信封探针: 同时探测平铺与分页两种形态的判别字段
type envelopeProbe struct {
	Count    *int            `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
	Contest  *model.LeaderboardContest `json:"contest"`
}

type flatEnvelope struct {
	Results []model.LeaderboardRow    `json:"results"`
	Contest *model.LeaderboardContest `json:"contest"`
}

// NormalizeLeaderboard 把两种线上信封归一成唯一的内部表示:
//   - {results, contest}                       平铺信封
//   - {count, next, previous, results}         分页信封, results 可以是
//     行数组, 也可以嵌套一层平铺信封
//
// 其余形态返回 ErrUnknownEnvelope.
// 比赛引用: 比赛模式取调用方请求上下文(mode), 否则取信封内嵌 contest.
func NormalizeLeaderboard(payload []byte, mode LeaderboardMode) (*model.CanonicalLeaderboard, error) {
	var probe envelopeProbe
	if err := sonic.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownEnvelope, err)
	}
	if probe.Results == nil {
		return nil, ErrUnknownEnvelope
	}

	canonical := &model.CanonicalLeaderboard{}
	contest := probe.Contest

	rows, nested, err := decodeResults(probe.Results)
	if err != nil {
		return nil, err
	}
	if nested != nil {
		rows = nested.Results
		if contest == nil {
			contest = nested.Contest
		}
	}

	if probe.Count != nil {
		canonical.Count = *probe.Count
		canonical.Next = probe.Next
		canonical.Previous = probe.Previous
	} else {
		canonical.Count = len(rows)
	}

	var contestID *uint64
	contestName := ""
	if competition, ok := mode.(CompetitionMode); ok {
		id := competition.ContestID
		contestID = &id
		contestName = competition.ContestName
	} else if contest != nil {
		id := contest.ID
		contestID = &id
		contestName = contest.Name
	}

	canonical.Entries = make([]model.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		canonical.Entries = append(canonical.Entries, normalizeRow(row, contestID, contestName))
	}
	return canonical, nil
}

// decodeResults results 字段要么是行数组, 要么嵌套平铺信封
func decodeResults(raw json.RawMessage) ([]model.LeaderboardRow, *flatEnvelope, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, ErrUnknownEnvelope
	}
	switch trimmed[0] {
	case '[':
		var rows []model.LeaderboardRow
		if err := sonic.Unmarshal(trimmed, &rows); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnknownEnvelope, err)
		}
		return rows, nil, nil
	case '{':
		var nested flatEnvelope
		if err := sonic.Unmarshal(trimmed, &nested); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnknownEnvelope, err)
		}
		if nested.Results == nil {
			return nil, nil, ErrUnknownEnvelope
		}
		return nil, &nested, nil
	default:
		return nil, nil, ErrUnknownEnvelope
	}
}

// normalizeRow 行到条目的逐字段回退链
func normalizeRow(row model.LeaderboardRow, contestID *uint64, contestName string) model.LeaderboardEntry {
	entry := model.LeaderboardEntry{
		Username:    "Unknown",
		ContestID:   contestID,
		ContestName: contestName,
	}

	if row.Rank != nil {
		entry.Rank = *row.Rank
	}

	switch {
	case row.User != nil && row.User.Username != "":
		entry.UserID = row.User.ID
		entry.Username = row.User.Username
	case row.Username != "":
		entry.Username = row.Username
	}
	if entry.UserID == 0 && row.UserID != nil {
		entry.UserID = *row.UserID
	}

	switch {
	case row.TotalScore != nil:
		entry.Score = *row.TotalScore
	case row.Score != nil:
		entry.Score = *row.Score
	case row.Solved != nil:
		entry.Score = *row.Solved
	}

	if row.Solved != nil {
		entry.Solved = *row.Solved
	}

	switch {
	case row.LastSolvedAt != nil:
		entry.LastSubmissionAt = row.LastSolvedAt
	case row.LastSubmissionAt != nil:
		entry.LastSubmissionAt = row.LastSubmissionAt
	}

	return entry
}

// LeaderboardPageMeta 由归一化结果生成分页簿记
func LeaderboardPageMeta(canonical *model.CanonicalLeaderboard, page, pageSize int) model.PageMeta {
	return model.PageMeta{
		Count:    canonical.Count,
		HasNext:  canonical.Next != nil,
		HasPrev:  canonical.Previous != nil,
		Page:     page,
		PageSize: pageSize,
	}
}

// RankingAPI 排行榜读取端点, 原始载荷交由归一化处理
type RankingAPI interface {
	GetPracticeRanking(ctx context.Context, page, pageSize int) ([]byte, error)
	GetContestRanking(ctx context.Context, contestID uint64) ([]byte, error)
}

type LeaderboardService interface {
	// Fetch 按模式拉取并归一化排行榜
	Fetch(ctx context.Context, mode LeaderboardMode, page, pageSize int) (*model.CanonicalLeaderboard, error)
}

type LeaderboardServiceImpl struct {
	api RankingAPI
	log loggerv2.Logger
}

var _ LeaderboardService = (*LeaderboardServiceImpl)(nil)

func NewLeaderboardService(api RankingAPI, log loggerv2.Logger) LeaderboardService {
	return &LeaderboardServiceImpl{
		api: api,
		log: log,
	}
}

// Fetch 按模式拉取并归一化排行榜
func (s *LeaderboardServiceImpl) Fetch(ctx context.Context, mode LeaderboardMode, page, pageSize int) (*model.CanonicalLeaderboard, error) {
	var (
		payload []byte
		err     error
	)
	switch m := mode.(type) {
	case CompetitionMode:
		payload, err = s.api.GetContestRanking(ctx, m.ContestID)
	case PracticeMode:
		payload, err = s.api.GetPracticeRanking(ctx, page, pageSize)
	default:
		return nil, fmt.Errorf("Fetch failed at unsupported mode %T", mode)
	}
	if err != nil {
		return nil, fmt.Errorf("Fetch failed at request ranking: %w", err)
	}

	canonical, err := NormalizeLeaderboard(payload, mode)
	if err != nil {
		s.log.ErrorContext(ctx, "Fetch normalize ranking failed", logger.Error(err))
		return nil, fmt.Errorf("Fetch failed at normalize ranking: %w", err)
	}
	return canonical, nil
}
