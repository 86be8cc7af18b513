package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/ctf_platform_client/constants"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/gintool"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type ContestHandler struct {
	store *Store
	log   loggerv2.Logger
}

var _ Handler = (*ContestHandler)(nil)

func NewContestHandler(store *Store, log loggerv2.Logger) *ContestHandler {
	return &ContestHandler{
		store: store,
		log:   log,
	}
}

func (h *ContestHandler) Register(r *gin.Engine) {
	r.GET(constants.GetContestListPath, h.GetContestList)
	r.GET(constants.GetGroupListPath, h.GetGroupList)
	r.DELETE(constants.DeleteGroupPath, gintool.WrapHandler(h.DeleteGroup, h.log))
}

// GetContestList 平铺数组, 不带信封
func (h *ContestHandler) GetContestList(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Contests())
}

func (h *ContestHandler) GetGroupList(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Groups())
}

func (h *ContestHandler) DeleteGroup(c *gin.Context, param model.DeleteGroupParam) {
	err := h.store.DeleteGroup(param.ID, time.Now())
	switch {
	case errors.Is(err, ErrNotFound):
		gintool.GinError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrGroupActiveContest):
		gintool.GinError(c, http.StatusConflict, err.Error())
		h.log.WarnContext(c.Request.Context(), "DeleteGroup rejected",
			logger.Uint64("group_id", param.ID))
	case err != nil:
		gintool.GinError(c, http.StatusInternalServerError, err.Error())
		h.log.ErrorContext(c.Request.Context(), "DeleteGroup failed", logger.Error(err))
	default:
		c.JSON(http.StatusOK, gin.H{"deleted": param.ID})
	}
}
