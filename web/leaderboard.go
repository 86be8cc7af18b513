package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/ctf_platform_client/constants"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/gintool"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// practiceWireRow 练习榜线上行: 平铺用户字段 + score
type practiceWireRow struct {
	Rank             int    `json:"rank"`
	UserID           uint64 `json:"user_id"`
	Username         string `json:"username"`
	Score            int    `json:"score"`
	Solved           int    `json:"solved"`
	LastSubmissionAt string `json:"last_submission_at"`
}

// contestWireRow 比赛榜线上行: 嵌套 user 引用 + total_score
type contestWireRow struct {
	Rank         int                  `json:"rank"`
	User         model.LeaderboardRef `json:"user"`
	TotalScore   int                  `json:"total_score"`
	Solved       int                  `json:"solved"`
	LastSolvedAt string               `json:"last_solved_at"`
}

type paginatedEnvelope struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

type contestEnvelope struct {
	Results []contestWireRow          `json:"results"`
	Contest *model.LeaderboardContest `json:"contest"`
}

type practiceRankingParam struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type contestRankingParam struct {
	ContestID uint64 `form:"contest_id"`
}

type LeaderboardHandler struct {
	store *Store
	log   loggerv2.Logger
}

var _ Handler = (*LeaderboardHandler)(nil)

func NewLeaderboardHandler(store *Store, log loggerv2.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		store: store,
		log:   log,
	}
}

func (h *LeaderboardHandler) Register(r *gin.Engine) {
	r.GET(constants.GetPracticeRankingPath, gintool.WrapQueryHandler(h.GetPracticeRanking, h.log))
	r.GET(constants.GetContestRankingPath, gintool.WrapQueryHandler(h.GetContestRanking, h.log))
}

// GetPracticeRanking 分页信封 {count, next, previous, results}
func (h *LeaderboardHandler) GetPracticeRanking(c *gin.Context, param practiceRankingParam) {
	page := param.Page
	if page < 1 {
		page = 1
	}
	pageSize := param.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	ranks, total := h.store.PracticePage(page, pageSize)
	results := make([]practiceWireRow, 0, len(ranks))
	for i, rank := range ranks {
		results = append(results, practiceWireRow{
			Rank:             (page-1)*pageSize + i + 1,
			UserID:           rank.UserID,
			Username:         rank.Username,
			Score:            rank.Score,
			Solved:           rank.Solved,
			LastSubmissionAt: rank.LastAt,
		})
	}

	envelope := paginatedEnvelope{
		Count:   total,
		Results: results,
	}
	if page*pageSize < total {
		next := fmt.Sprintf("%s?page=%d&page_size=%d", constants.GetPracticeRankingPath, page+1, pageSize)
		envelope.Next = &next
	}
	if page > 1 {
		prev := fmt.Sprintf("%s?page=%d&page_size=%d", constants.GetPracticeRankingPath, page-1, pageSize)
		envelope.Previous = &prev
	}
	c.JSON(http.StatusOK, envelope)
}

// GetContestRanking 平铺信封 {results, contest}
func (h *LeaderboardHandler) GetContestRanking(c *gin.Context, param contestRankingParam) {
	if param.ContestID == 0 {
		gintool.GinError(c, http.StatusBadRequest, "contest_id is required")
		return
	}

	ranks, contest, err := h.store.ContestRanks(param.ContestID)
	if errors.Is(err, ErrNotFound) {
		gintool.GinError(c, http.StatusNotFound, "contest not found")
		return
	}

	results := make([]contestWireRow, 0, len(ranks))
	for i, rank := range ranks {
		results = append(results, contestWireRow{
			Rank:         i + 1,
			User:         model.LeaderboardRef{ID: rank.UserID, Username: rank.Username},
			TotalScore:   rank.TotalScore,
			Solved:       rank.Solved,
			LastSolvedAt: rank.LastAt,
		})
	}
	c.JSON(http.StatusOK, contestEnvelope{
		Results: results,
		Contest: contest,
	})
}
