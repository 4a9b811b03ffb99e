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

type Meme struct {
	Config         *config.Config
	MemeService    service.IMemeService
	RankingService service.IRankingService
}

func (h *Meme) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)
	optional := middleware.OptionalAuth(secret)

	g := r.Group("/v1/memes")
	g.POST("", authorize, context.Wrap(h.Create))
	g.GET("/:id", optional, context.Wrap(h.Detail))
	g.PATCH("/:id", authorize, context.Wrap(h.Update))
	g.DELETE("/:id", authorize, context.Wrap(h.Delete))
	g.GET("/:id/similar", optional, context.Wrap(h.Similar))
}

func (h *Meme) Detail(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.MemeService.Detail(c.Request.Context(), viewer(c), id)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *Meme) Create(c *gin.Context) error {
	var req types.CreateMemeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	meme, err := h.MemeService.Create(c.Request.Context(), viewer(c), &req)
	if err != nil {
		return err
	}
	response.Success(c, meme)
	return nil
}

func (h *Meme) Update(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.UpdateMemeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	meme, err := h.MemeService.Update(c.Request.Context(), viewer(c), id, &req)
	if err != nil {
		return err
	}
	response.Success(c, meme)
	return nil
}

func (h *Meme) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.MemeService.Delete(c.Request.Context(), viewer(c), id); err != nil {
		return err
	}
	response.Success(c, nil)
	return nil
}

func (h *Meme) Similar(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	memes, err := h.RankingService.Similar(c.Request.Context(), viewer(c), id, h.Config.Ranking.SimilarLimit)
	if err != nil {
		return err
	}
	response.Success(c, memes)
	return nil
}
