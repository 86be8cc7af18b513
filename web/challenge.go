package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/ctf_platform_client/constants"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ChallengeHandler struct {
	store *Store
	log   loggerv2.Logger
}

var _ Handler = (*ChallengeHandler)(nil)

func NewChallengeHandler(store *Store, log loggerv2.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		store: store,
		log:   log,
	}
}

func (h *ChallengeHandler) Register(r *gin.Engine) {
	r.GET(constants.GetChallengeListPath, h.GetChallengeList)
}

// GetChallengeList 平铺数组, 比赛归属由客户端结合比赛列表推导
func (h *ChallengeHandler) GetChallengeList(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Challenges())
}
