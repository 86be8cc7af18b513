package job

import (
	"context"
	"fmt"
	"time"

	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const ContestRefresherJobName = "contest_refresher"

// ContestAPI 刷新任务依赖的只读端点
type ContestAPI interface {
	GetContestList(ctx context.Context) ([]model.Contest, error)
	GetChallengeList(ctx context.Context) ([]model.Challenge, error)
}

// ContestSnapshot 一次刷新得到的全量快照, 整体替换下游状态
type ContestSnapshot struct {
	Contests   []model.Contest
	Challenges []model.Challenge
	FetchedAt  time.Time
}

// ContestRefresher 周期性重拉比赛与题目列表, 快照交给 sink.
// sink 由界面侧注入, 在自己的事件循环里消费, 这里不做并发控制.
type ContestRefresher struct {
	cfg  config.RefresherConfig
	api  ContestAPI
	sink func(ContestSnapshot)
	log  loggerv2.Logger
}

func NewContestRefresher(cfg config.RefresherConfig, api ContestAPI, sink func(ContestSnapshot), log loggerv2.Logger) *ContestRefresher {
	return &ContestRefresher{
		cfg:  cfg,
		api:  api,
		sink: sink,
		log:  log,
	}
}

// Register 注册到调度器
func (r *ContestRefresher) Register(scheduler *CronScheduler) error {
	return scheduler.AddJob(&JobConfig{
		Name:     ContestRefresherJobName,
		CronExpr: r.cfg.CronExpr,
		JobFunc:  r.Refresh,
		Enabled:  r.cfg.Enabled,
		Timeout:  time.Duration(r.cfg.TimeoutSeconds) * time.Second,
	})
}

// Refresh 拉取并下发快照
func (r *ContestRefresher) Refresh(ctx context.Context) error {
	contests, err := r.api.GetContestList(ctx)
	if err != nil {
		return fmt.Errorf("Refresh failed at get contest list: %w", err)
	}
	challenges, err := r.api.GetChallengeList(ctx)
	if err != nil {
		return fmt.Errorf("Refresh failed at get challenge list: %w", err)
	}

	r.sink(ContestSnapshot{
		Contests:   contests,
		Challenges: challenges,
		FetchedAt:  time.Now(),
	})
	r.log.InfoContext(ctx, "Refresh completed",
		logger.Int("contests", len(contests)),
		logger.Int("challenges", len(challenges)),
	)
	return nil
}
