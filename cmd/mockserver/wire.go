//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/ctf_platform_client/cmd/mockserver/ioc"
	commonioc "github.com/to404hanga/ctf_platform_client/ioc"
	"github.com/to404hanga/ctf_platform_client/web"
)

func BuildDependency() *web.GinServer {
	wire.Build(
		commonioc.InitLogger,

		ioc.InitStore,
		ioc.InitJWTHandler,

		web.NewAuthHandler,
		web.NewContestHandler,
		web.NewChallengeHandler,
		web.NewBlogHandler,
		web.NewLeaderboardHandler,

		ioc.InitGinServer,
	)
	return &web.GinServer{}
}
