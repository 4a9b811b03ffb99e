package types

import (
	"time"

	"Memeow/models"
)

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=32,alphanum"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginReq struct {
	Login    string `json:"login" binding:"required"` // 用户名或邮箱
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenRes struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UpdateProfileReq struct {
	Bio               *string `json:"bio" binding:"omitempty,max=500"`
	Avatar            *string `json:"avatar" binding:"omitempty,max=255"`
	EmailSubscription *bool   `json:"email_subscription"`
}

type ProfileRes struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// UserRegisteredEvent user.registered 消息体
type UserRegisteredEvent struct {
	UserID       uint64    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}
