package handler

import (
	"Memeow/config"
	"Memeow/middleware"
	"Memeow/pkg/context"
	"Memeow/pkg/response"
	"Memeow/service"
	"Memeow/types"

	"github.com/gin-gonic/gin"
)

type Tag struct {
	Config     *config.Config
	TagService service.ITagService
}

func (h *Tag) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/tags")
	g.GET("", context.Wrap(h.List))
	g.POST("", middleware.Auth([]byte(h.Config.Jwt.Secret)), context.Wrap(h.Create))
}

func (h *Tag) List(c *gin.Context) error {
	tags, err := h.TagService.List(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, tags)
	return nil
}

func (h *Tag) Create(c *gin.Context) error {
	var req types.CreateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	tag, err := h.TagService.Create(c.Request.Context(), viewer(c), &req)
	if err != nil {
		return err
	}
	response.Success(c, tag)
	return nil
}
