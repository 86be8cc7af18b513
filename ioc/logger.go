package ioc

import (
	"log"

	"github.com/spf13/viper"
	"github.com/to404hanga/ctf_platform_client/config"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func InitLogger() loggerv2.Logger {
	var cfg config.LogConfig
	if err := viper.UnmarshalKey(cfg.Key(), &cfg); err != nil {
		log.Panicf("unmarshal log config failed: %v", err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Debug {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapLogger, err := zapCfg.Build()
	if err != nil {
		log.Panicf("build zap logger failed: %v", err)
	}
	return loggerv2.NewZapContextLogger(zapLogger)
}
