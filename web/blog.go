package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/ctf_platform_client/constants"
	"github.com/to404hanga/ctf_platform_client/model"
	"github.com/to404hanga/ctf_platform_client/pkg/gintool"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type BlogHandler struct {
	store *Store
	log   loggerv2.Logger
}

var _ Handler = (*BlogHandler)(nil)

func NewBlogHandler(store *Store, log loggerv2.Logger) *BlogHandler {
	return &BlogHandler{
		store: store,
		log:   log,
	}
}

func (h *BlogHandler) Register(r *gin.Engine) {
	r.GET(constants.GetBlogListPath, h.GetBlogList)
	r.POST(constants.CreateBlogPath, gintool.WrapHandler(h.CreateBlog, h.log))
	r.PUT(constants.UpdateBlogPath, gintool.WrapHandler(h.UpdateBlog, h.log))
	r.DELETE(constants.DeleteBlogPath, gintool.WrapHandler(h.DeleteBlog, h.log))
}

func (h *BlogHandler) GetBlogList(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Blogs())
}

func (h *BlogHandler) CreateBlog(c *gin.Context, param model.CreateBlogParam) {
	if param.Title == "" || param.Content == "" {
		gintool.GinError(c, http.StatusBadRequest, "title and content are required")
		return
	}
	blog := h.store.CreateBlog(param, operatorName(c))
	c.JSON(http.StatusOK, blog)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context, param model.UpdateBlogParam) {
	err := h.store.UpdateBlog(param)
	switch {
	case errors.Is(err, ErrNotFound):
		gintool.GinError(c, http.StatusNotFound, err.Error())
	case err != nil:
		gintool.GinError(c, http.StatusInternalServerError, err.Error())
		h.log.ErrorContext(c.Request.Context(), "UpdateBlog failed", logger.Error(err))
	default:
		c.JSON(http.StatusOK, gin.H{"updated": param.ID})
	}
}

func (h *BlogHandler) DeleteBlog(c *gin.Context, param model.DeleteBlogParam) {
	err := h.store.DeleteBlog(param.ID)
	switch {
	case errors.Is(err, ErrNotFound):
		gintool.GinError(c, http.StatusNotFound, err.Error())
	case err != nil:
		gintool.GinError(c, http.StatusInternalServerError, err.Error())
		h.log.ErrorContext(c.Request.Context(), "DeleteBlog failed", logger.Error(err))
	default:
		c.JSON(http.StatusOK, gin.H{"deleted": param.ID})
	}
}
