package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/models"
	"Memeow/pkg/jwt"
	"Memeow/pkg/log"
	"Memeow/types"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.RegisterReq) (*types.TokenRes, error)
	Login(ctx context.Context, req *types.LoginReq) (*types.TokenRes, error)
	Refresh(ctx context.Context, refreshToken string) (*types.TokenRes, error)
	Profile(ctx context.Context, v Viewer) (*types.ProfileRes, error)
	UpdateProfile(ctx context.Context, v Viewer, req *types.UpdateProfileReq) (*types.ProfileRes, error)
}

// refresh token 剩余有效期不足时顺带换新
const refreshRotateBuffer = 24 * time.Hour

var ErrInvalidCredentials = ErrUnauthorized.WithMsg("invalid username or password")

type UserService struct {
	Config     *config.Config
	UserDAO    *dao.UserDAO
	ProfileDAO *dao.ProfileDAO
	Publisher  EventPublisher
}

// Register 用户和资料在同一事务中创建，提交后发布 user.registered
func (s *UserService) Register(ctx context.Context, req *types.RegisterReq) (*types.TokenRes, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exist, err := s.UserDAO.IsExist(ctx, "username = ? OR email = ?", username, email)
	if err != nil {
		return nil, err
	}
	if exist {
		return nil, ErrConflict.WithMsg("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: string(hash)}
	err = s.UserDAO.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.UserDAO.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.ProfileDAO.WithTx(tx).Create(ctx, &models.Profile{UserID: user.ID})
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict.WithMsg("username or email already registered")
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	event := &types.UserRegisteredEvent{
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		RegisteredAt: user.CreatedAt,
	}
	// 用户已经创建成功，通知失败不影响注册
	if err := s.Publisher.Publish(ctx, types.EventUserRegistered, event); err != nil {
		log.L.Error("publish user.registered", zap.Uint64("user_id", user.ID), zap.Error(err))
	}

	log.L.Info("user registered", zap.Uint64("user_id", user.ID))
	return s.issue(user, true)
}

func (s *UserService) Login(ctx context.Context, req *types.LoginReq) (*types.TokenRes, error) {
	user, err := s.UserDAO.FindByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user, true)
}

func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*types.TokenRes, error) {
	claims, err := jwt.ParseToken([]byte(s.Config.Jwt.Secret), jwt.TokenRefresh, refreshToken)
	if err != nil {
		return nil, ErrUnauthorized.WithMsg("invalid refresh token")
	}
	user, err := s.UserDAO.FindById(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized.WithMsg("invalid refresh token")
	}
	return s.issue(user, jwt.ShouldRotateRefreshToken(claims, refreshRotateBuffer))
}

func (s *UserService) issue(user *models.User, withRefresh bool) (*types.TokenRes, error) {
	secret := []byte(s.Config.Jwt.Secret)
	access, err := jwt.GenerateToken(secret, user.ID, user.IsStaff, jwt.TokenAccess, s.Config.Jwt.AccessExpire)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	res := &types.TokenRes{AccessToken: access, ExpiresIn: int64(s.Config.Jwt.AccessExpire.Seconds())}
	if withRefresh {
		if res.RefreshToken, err = jwt.GenerateToken(secret, user.ID, user.IsStaff, jwt.TokenRefresh, s.Config.Jwt.RefreshExpire); err != nil {
			return nil, fmt.Errorf("sign refresh token: %w", err)
		}
	}
	return res, nil
}

func (s *UserService) Profile(ctx context.Context, v Viewer) (*types.ProfileRes, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}
	user, err := s.UserDAO.FindById(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound.WithMsg("user not found")
	}
	profile, err := s.ProfileDAO.FindByUserID(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{UserID: v.UserID}
	}
	return &types.ProfileRes{User: user, Profile: profile}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, v Viewer, req *types.UpdateProfileReq) (*types.ProfileRes, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}
	fields := map[string]any{}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.EmailSubscription != nil {
		fields["email_subscription"] = *req.EmailSubscription
	}
	if err := s.ProfileDAO.Update(ctx, v.UserID, fields); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.Profile(ctx, v)
}
