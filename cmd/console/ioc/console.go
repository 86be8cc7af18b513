package ioc

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/to404hanga/ctf_platform_client/api"
	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/job"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/service"
	"github.com/to404hanga/ctf_platform_client/service/exporter/factory"
	"github.com/to404hanga/ctf_platform_client/ui"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// Console 控制台应用: 事件循环 + 后台刷新调度器
type Console struct {
	client    *api.Client
	program   *tea.Program
	scheduler *job.CronScheduler
	session   config.SessionConfig
	log       loggerv2.Logger
}

func InitScheduler(l loggerv2.Logger) *job.CronScheduler {
	return job.NewCronScheduler(l)
}

func InitConsole(client *api.Client, leaderboardSvc service.LeaderboardService, exporters *factory.RankingExporterFactory, scheduler *job.CronScheduler, l loggerv2.Logger) *Console {
	var uiCfg config.UIConfig
	if err := viper.UnmarshalKey(uiCfg.Key(), &uiCfg); err != nil {
		log.Panicf("unmarshal ui config failed: %v", err)
	}
	var exporterCfg config.ExporterConfig
	if err := viper.UnmarshalKey(exporterCfg.Key(), &exporterCfg); err != nil {
		log.Panicf("unmarshal exporter config failed: %v", err)
	}
	var refresherCfg config.RefresherConfig
	if err := viper.UnmarshalKey(refresherCfg.Key(), &refresherCfg); err != nil {
		log.Panicf("unmarshal refresher config failed: %v", err)
	}
	var sessionCfg config.SessionConfig
	if err := viper.UnmarshalKey(sessionCfg.Key(), &sessionCfg); err != nil {
		log.Panicf("unmarshal session config failed: %v", err)
	}

	// 会话过期后由界面触发重登, 复用配置里的凭据
	relogin := func(ctx context.Context) error {
		_, err := client.Login(ctx, model.LoginParam{
			Username: sessionCfg.Username,
			Password: sessionCfg.Password,
		})
		return err
	}

	app := ui.NewApp(client, leaderboardSvc, exporters, uiCfg, exporterCfg.Dir, relogin, l)
	program := tea.NewProgram(app, tea.WithAltScreen())

	// 刷新任务跑在 cron 协程, 快照经 Program.Send 回到单线程事件循环
	refresher := job.NewContestRefresher(refresherCfg, client, func(snapshot job.ContestSnapshot) {
		program.Send(ui.RefreshSnapshotMsg(snapshot))
	}, l)
	if err := refresher.Register(scheduler); err != nil {
		log.Panicf("register contest refresher failed: %v", err)
	}

	return &Console{
		client:    client,
		program:   program,
		scheduler: scheduler,
		session:   sessionCfg,
		log:       l,
	}
}

// Start 先建会话, 再起调度器与事件循环
func (c *Console) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := c.client.Login(ctx, model.LoginParam{
		Username: c.session.Username,
		Password: c.session.Password,
	})
	if err != nil {
		return fmt.Errorf("Start failed at login: %w", err)
	}
	c.log.InfoContext(ctx, "login succeeded",
		logger.String("username", resp.Username),
		logger.String("role", resp.Role),
	)

	if err = c.scheduler.Start(); err != nil {
		return fmt.Errorf("Start failed at scheduler: %w", err)
	}
	defer c.scheduler.Stop()

	if _, err = c.program.Run(); err != nil {
		return fmt.Errorf("Start failed at event loop: %w", err)
	}
	return nil
}
