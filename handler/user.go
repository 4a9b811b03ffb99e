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

type User struct {
	Config      *config.Config
	UserService service.IUserService
	MemeService service.IMemeService
}

func (h *User) RegisterRouter(r gin.IRouter) {
	auth := r.Group("/v1/auth")
	auth.POST("/register", context.Wrap(h.Register))
	auth.POST("/login", context.Wrap(h.Login))
	auth.POST("/refresh", context.Wrap(h.Refresh))

	me := r.Group("/v1/me", middleware.Auth([]byte(h.Config.Jwt.Secret)))
	me.GET("", context.Wrap(h.Profile))
	me.PATCH("/profile", context.Wrap(h.UpdateProfile))
	me.GET("/likes", context.Wrap(h.Likes))
	me.GET("/favorites", context.Wrap(h.Favorites))
}

func (h *User) Register(c *gin.Context) error {
	var req types.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	res, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *User) Login(c *gin.Context) error {
	var req types.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	res, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *User) Refresh(c *gin.Context) error {
	var req types.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	res, err := h.UserService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *User) Profile(c *gin.Context) error {
	res, err := h.UserService.Profile(c.Request.Context(), viewer(c))
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *User) UpdateProfile(c *gin.Context) error {
	var req types.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindErr(err)
	}
	res, err := h.UserService.UpdateProfile(c.Request.Context(), viewer(c), &req)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *User) Likes(c *gin.Context) error {
	var req types.ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindErr(err)
	}
	res, err := h.MemeService.MyLikes(c.Request.Context(), viewer(c), req.Page)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *User) Favorites(c *gin.Context) error {
	var req types.ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return bindErr(err)
	}
	res, err := h.MemeService.MyFavorites(c.Request.Context(), viewer(c), req.Page)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}
