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

// Feed 排行、搜索和每日推荐
type Feed struct {
	Config           *config.Config
	RankingService   service.IRankingService
	DailyPickService service.IDailyPickService
	RecommendService service.IRecommendService
	MemeService      service.IMemeService
}

func (h *Feed) RegisterRouter(r gin.IRouter) {
	secret := []byte(h.Config.Jwt.Secret)
	optional := middleware.OptionalAuth(secret)

	g := r.Group("/v1", optional)
	g.GET("/feed/popular", context.Wrap(h.Popular))
	g.GET("/feed/latest", context.Wrap(h.Latest))
	g.GET("/feed/random", context.Wrap(h.Random))
	g.GET("/tags/:slug/memes", context.Wrap(h.ByTag))
	g.GET("/search", context.Wrap(h.Search))
	g.GET("/picks/daily", context.Wrap(h.Daily))

	r.GET("/v1/picks/personal", middleware.Auth(secret), context.Wrap(h.Personal))
}

func (h *Feed) decorated(c *gin.Context, page *types.MemePage) error {
	res, err := h.MemeService.Decorate(c.Request.Context(), viewer(c), page)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *Feed) Popular(c *gin.Context) error {
	var req types.ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindErr(err)
	}
	page, err := h.RankingService.Popular(c.Request.Context(), viewer(c), req.Limit, sinceDays(req.SinceDays))
	if err != nil {
		return err
	}
	return h.decorated(c, page)
}

func (h *Feed) Latest(c *gin.Context) error {
	var req types.ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindErr(err)
	}
	page, err := h.RankingService.Latest(c.Request.Context(), viewer(c), req.Limit)
	if err != nil {
		return err
	}
	return h.decorated(c, page)
}

func (h *Feed) ByTag(c *gin.Context) error {
	var req types.ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindErr(err)
	}
	page, err := h.RankingService.ByTag(c.Request.Context(), viewer(c), c.Param("slug"), req.Page)
	if err != nil {
		return err
	}
	return h.decorated(c, page)
}

func (h *Feed) Search(c *gin.Context) error {
	var req types.SearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindErr(err)
	}
	page, err := h.RankingService.Search(c.Request.Context(), viewer(c), req.Q, req.Page)
	if err != nil {
		return err
	}
	return h.decorated(c, page)
}

func (h *Feed) Random(c *gin.Context) error {
	meme, err := h.MemeService.Random(c.Request.Context(), viewer(c))
	if err != nil {
		return err
	}
	response.Success(c, meme)
	return nil
}

// Daily 没有已发布内容时 meme 为 null
func (h *Feed) Daily(c *gin.Context) error {
	meme, err := h.DailyPickService.MemeOfTheDay(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"meme": meme})
	return nil
}

func (h *Feed) Personal(c *gin.Context) error {
	meme, err := h.RecommendService.PersonalPick(c.Request.Context(), viewer(c))
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"meme": meme})
	return nil
}
