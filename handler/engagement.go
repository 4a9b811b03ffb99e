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

type Engagement struct {
	Config            *config.Config
	EngagementService service.IEngagementService
}

func (h *Engagement) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	authorize := middleware.Auth(secret)

	g := r.Group("/v1/memes/:id")
	g.POST("/like", authorize, context.Wrap(h.ToggleLike))
	g.POST("/favorite", authorize, context.Wrap(h.ToggleFavorite))
	g.GET("/favorites/count", middleware.OptionalAuth(secret), context.Wrap(h.FavoriteCount))

	admin := r.Group("/v1/admin", authorize, middleware.Staff())
	admin.POST("/recount", context.Wrap(h.RecountAll))
	admin.POST("/memes/:id/recount", context.Wrap(h.Recount))
}

// ToggleLike 返回 {"liked": bool, "likes_count": int}
func (h *Engagement) ToggleLike(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.EngagementService.ToggleLike(c.Request.Context(), viewer(c), id)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

// ToggleFavorite 返回 {"favorited": bool}
func (h *Engagement) ToggleFavorite(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.EngagementService.ToggleFavorite(c.Request.Context(), viewer(c), id)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *Engagement) FavoriteCount(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.EngagementService.FavoriteCount(c.Request.Context(), viewer(c), id)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"favorites_count": n})
	return nil
}

func (h *Engagement) Recount(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.EngagementService.Recount(c.Request.Context(), id)
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"likes_count": n})
	return nil
}

func (h *Engagement) RecountAll(c *gin.Context) error {
	n, err := h.EngagementService.RecountAll(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, types.RecountRes{Updated: n})
	return nil
}
