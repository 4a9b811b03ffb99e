package handler

import (
	"Memeow/pkg/context"
	"Memeow/pkg/response"
	"Memeow/service"

	"github.com/gin-gonic/gin"
)

type Stats struct {
	MemeService service.IMemeService
}

func (h *Stats) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/stats", context.Wrap(h.Get))
}

func (h *Stats) Get(c *gin.Context) error {
	res, err := h.MemeService.Stats(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}
