package ioc

import (
	"log"

	"github.com/spf13/viper"
	"github.com/to404hanga/ctf_platform_client/api"
	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/service"
	"github.com/to404hanga/ctf_platform_client/service/exporter/factory"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitAPIClient(l loggerv2.Logger) *api.Client {
	var cfg config.APIConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal api config failed: %v", err)
	}
	return api.NewClient(cfg, l)
}

func InitLeaderboardService(client *api.Client, l loggerv2.Logger) service.LeaderboardService {
	return service.NewLeaderboardService(client, l)
}

func InitExporterFactory(l loggerv2.Logger) *factory.RankingExporterFactory {
	return factory.NewRankingExporterFactory(l)
}
