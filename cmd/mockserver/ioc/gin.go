package ioc

import (
	"log"
	"net"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/to404hanga/ctf_platform_client/config"
	"github.com/to404hanga/ctf_platform_client/pkg/gintool"
	"github.com/to404hanga/ctf_platform_client/web"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitStore() *web.Store {
	return web.NewStore()
}

func InitJWTHandler() *web.JWTHandler {
	var cfg config.MockServerConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal mock server config failed: %v", err)
	}
	return web.NewJWTHandler(cfg.JWTSecret)
}

func InitGinServer(l loggerv2.Logger, jwtHandler *web.JWTHandler, authHandler *web.AuthHandler, contestHandler *web.ContestHandler, challengeHandler *web.ChallengeHandler, blogHandler *web.BlogHandler, leaderboardHandler *web.LeaderboardHandler) *web.GinServer {
	var cfg config.MockServerConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal mock server config failed: %v", err)
	}

	engine := gin.Default()
	pprof.Register(engine)
	engine.Use(
		gintool.ContextMiddleware(),
		jwtHandler.Middleware(l),
	)

	authHandler.Register(engine)
	contestHandler.Register(engine)
	challengeHandler.Register(engine)
	blogHandler.Register(engine)
	leaderboardHandler.Register(engine)

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Panicf("listen %s failed: %v", cfg.Addr, err)
	}

	return &web.GinServer{
		Engine:   engine,
		Listener: listener,
	}
}
