package context

import (
	"errors"
	"net/http"

	"Memeow/pkg/log"
	"Memeow/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID    = "user_id"
	CtxStaff     = "is_staff"
	CtxRequestID = "request_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("request failed",
				zap.String("path", c.FullPath()),
				zap.String("request_id", c.GetString(CtxRequestID)),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  "internal error",
			})
		}
	}
}

// GetUserID 未登录返回 0
func GetUserID(c *gin.Context) uint64 {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0
	}
	uid, _ := v.(uint64)
	return uid
}

func IsStaff(c *gin.Context) bool {
	return c.GetBool(CtxStaff)
}
