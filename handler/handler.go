package handler

import (
	"strconv"
	"time"

	"Memeow/pkg/context"
	"Memeow/service"

	"github.com/gin-gonic/gin"
)

// viewer 由 auth 中间件写入的身份
func viewer(c *gin.Context) service.Viewer {
	return service.Viewer{UserID: context.GetUserID(c), Staff: context.IsStaff(c)}
}

func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrValidation.WithMsg("invalid " + name)
	}
	return id, nil
}

// sinceDays 0 表示不限
func sinceDays(days int) *time.Time {
	if days <= 0 {
		return nil
	}
	t := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

func bindErr(err error) error {
	return service.ErrValidation.WithMsg(err.Error())
}
