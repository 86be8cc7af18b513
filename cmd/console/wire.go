//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/ctf_platform_client/cmd/console/ioc"
	commonioc "github.com/to404hanga/ctf_platform_client/ioc"
)

func BuildDependency() *ioc.Console {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitAPIClient,
		commonioc.InitLeaderboardService,
		commonioc.InitExporterFactory,

		ioc.InitScheduler,
		ioc.InitConsole,
	)
	return &ioc.Console{}
}
