package web

import (
	"net"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Register(r *gin.Engine)
}

type GinServer struct {
	Engine   *gin.Engine
	Listener net.Listener
}

func (s *GinServer) Start() error {
	return s.Engine.RunListener(s.Listener)
}
