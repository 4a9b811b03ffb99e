package response

import (
	"errors"
	"net/http"

	"Memeow/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BizError 业务错误，Code 同时作为 HTTP 状态码使用
type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

// Is 按 Code 比较，便于 errors.Is(err, ErrNotFound) 匹配带自定义消息的同类错误
func (e *BizError) Is(target error) bool {
	var t *BizError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithMsg 复制一个同 Code 的错误
func (e *BizError) WithMsg(msg string) *BizError {
	return &BizError{Code: e.Code, Msg: msg}
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.JSON(http.StatusInternalServerError, Response{
					Code: 500,
					Msg:  "internal error",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err

			var be *BizError
			if errors.As(err, &be) {
				Fail(c, be.Code, be.Msg)
			} else {
				Fail(c, 500, err.Error())
			}
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
