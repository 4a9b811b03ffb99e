package service

import (
	"context"
	"testing"

	"Memeow/pkg/jwt"
	"Memeow/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLogin(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	res, err := e.user.Register(ctx, &types.RegisterReq{Username: "alice", Email: "Alice@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := jwt.ParseToken([]byte(e.conf.Jwt.Secret), jwt.TokenAccess, res.AccessToken)
	require.NoError(t, err)

	profile, err := e.user.Profile(ctx, Viewer{UserID: claims.UserID})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", profile.User.Email)
	assert.Equal(t, claims.UserID, profile.Profile.UserID)

	// 注册成功后发送欢迎邮件
	msgs := e.mailer.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "alice@example.com", msgs[0].To)

	_, err = e.user.Register(ctx, &types.RegisterReq{Username: "alice", Email: "other@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = e.user.Login(ctx, &types.LoginReq{Login: "alice@example.com", Password: "password1"})
	require.NoError(t, err)
	_, err = e.user.Login(ctx, &types.LoginReq{Login: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = e.user.Login(ctx, &types.LoginReq{Login: "bob", Password: "password1"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.user.Register(ctx, &types.RegisterReq{Username: "alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)

	refreshed, err := e.user.Refresh(ctx, res.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	// 离过期还早，不换 refresh token
	assert.Empty(t, refreshed.RefreshToken)

	_, err = e.user.Refresh(ctx, res.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	res, err := e.user.Register(ctx, &types.RegisterReq{Username: "alice", Email: "a@example.com", Password: "password1"})
	require.NoError(t, err)
	claims, err := jwt.ParseToken([]byte(e.conf.Jwt.Secret), jwt.TokenAccess, res.AccessToken)
	require.NoError(t, err)
	v := Viewer{UserID: claims.UserID}

	bio := "memes all day"
	sub := true
	profile, err := e.user.UpdateProfile(ctx, v, &types.UpdateProfileReq{Bio: &bio, EmailSubscription: &sub})
	require.NoError(t, err)
	assert.Equal(t, bio, profile.Profile.Bio)
	assert.True(t, profile.Profile.EmailSubscription)

	_, err = e.user.UpdateProfile(ctx, Anonymous, &types.UpdateProfileReq{Bio: &bio})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateTag(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := Viewer{UserID: 1}

	tag, err := e.tag.Create(ctx, u, &types.CreateTagReq{Name: "Funny Cats"})
	require.NoError(t, err)
	assert.Equal(t, "funny-cats", tag.Slug)

	_, err = e.tag.Create(ctx, u, &types.CreateTagReq{Name: "Other", Slug: "funny-cats"})
	assert.ErrorIs(t, err, ErrConflict)
	_, err = e.tag.Create(ctx, u, &types.CreateTagReq{Name: "!!!"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.tag.Create(ctx, Anonymous, &types.CreateTagReq{Name: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	tags, err := e.tag.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
