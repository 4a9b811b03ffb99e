package service

import (
	"context"
	"testing"
	"time"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/dao/cache"
	"Memeow/models"
	"Memeow/pkg/clock"
	"Memeow/pkg/database/dbtest"
	"Memeow/pkg/jwt"
	"Memeow/pkg/mail"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db     *gorm.DB
	conf   *config.Config
	clock  *clock.Fixed
	cache  *cache.MemoryCache
	mailer *mail.LogMailer

	memes *dao.MemeDAO
	tags  *dao.TagDAO
	likes *dao.LikeDAO
	favs  *dao.FavoriteDAO
	users *dao.UserDAO

	engagement *EngagementService
	ranking    *RankingService
	daily      *DailyPickService
	recommend  *RecommendService
	meme       *MemeService
	tag        *TagService
	user       *UserService
	notify     *NotifyService
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		db:     dbtest.New(t),
		conf:   config.Default(),
		clock:  clock.NewFixed(base),
		mailer: &mail.LogMailer{},
	}
	e.conf.Jwt.Secret = "test-secret"
	e.cache = cache.NewMemoryCache(time.Hour)
	picks := cache.NewPickStorage(e.cache)

	e.memes = dao.NewMemeDAO(e.db)
	e.tags = dao.NewTagDAO(e.db)
	e.likes = dao.NewLikeDAO(e.db)
	e.favs = dao.NewFavoriteDAO(e.db)
	e.users = dao.NewUserDAO(e.db)

	e.engagement = &EngagementService{MemeDAO: e.memes, LikeDAO: e.likes, FavoriteDAO: e.favs}
	e.ranking = &RankingService{Config: e.conf, MemeDAO: e.memes, TagDAO: e.tags}
	e.daily = &DailyPickService{Config: e.conf, Clock: e.clock, MemeDAO: e.memes, Picks: picks}
	e.recommend = &RecommendService{Config: e.conf, MemeDAO: e.memes, Picks: picks}
	e.meme = &MemeService{
		Config:      e.conf,
		MemeDAO:     e.memes,
		TagDAO:      e.tags,
		LikeDAO:     e.likes,
		FavoriteDAO: e.favs,
		UserDAO:     e.users,
		Ranking:     e.ranking,
		Recommend:   e.recommend,
		Daily:       e.daily,
	}
	e.tag = &TagService{TagDAO: e.tags}
	e.notify = &NotifyService{Config: e.conf, Clock: e.clock, Mailer: e.mailer, UserDAO: e.users, MemeDAO: e.memes}
	e.user = &UserService{
		Config:     e.conf,
		UserDAO:    e.users,
		ProfileDAO: dao.NewProfileDAO(e.db),
		Publisher:  &LocalPublisher{Handler: e.notify},
	}
	return e
}

func (e *testEnv) newTag(t *testing.T, id uint64, name string) models.Tag {
	t.Helper()
	tag := models.Tag{ID: id, Name: name, Slug: models.Slugify(name)}
	require.NoError(t, e.db.Create(&tag).Error)
	return tag
}

type memeOpt func(m *models.Meme)

func likes(n int64) memeOpt { return func(m *models.Meme) { m.LikesCount = n } }
func draft() memeOpt { return func(m *models.Meme) { m.IsPublished = false } }
func author(id uint64) memeOpt { return func(m *models.Meme) { m.AuthorID = id } }
func age(d time.Duration) memeOpt { return func(m *models.Meme) { m.CreatedAt = base.Add(-d) } }
func tagged(tags ...models.Tag) memeOpt { return func(m *models.Meme) { m.Tags = tags } }
func described(s string) memeOpt { return func(m *models.Meme) { m.Description = s } }

func (e *testEnv) newMeme(t *testing.T, id uint64, title string, opts ...memeOpt) *models.Meme {
	t.Helper()
	m := &models.Meme{
		ID:          id,
		Title:       title,
		AuthorID:    100,
		IsPublished: true,
		CreatedAt:   base.Add(-time.Hour),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.UpdatedAt = m.CreatedAt
	require.NoError(t, e.db.Create(m).Error)
	return m
}

// like 直接写关系表并同步计数，用于准备数据
func (e *testEnv) like(t *testing.T, userID, memeID uint64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.likes.Add(ctx, userID, memeID))
	require.NoError(t, e.memes.IncrLikeCount(ctx, memeID, 1))
}

func ids(memes []*models.Meme) []uint64 {
	out := make([]uint64, 0, len(memes))
	for _, m := range memes {
		out = append(out, m.ID)
	}
	return out
}

func viewerFromToken(t *testing.T, e *testEnv, token string) Viewer {
	t.Helper()
	claims, err := jwt.ParseToken([]byte(e.conf.Jwt.Secret), jwt.TokenAccess, token)
	require.NoError(t, err)
	return Viewer{UserID: claims.UserID, Staff: claims.Staff}
}
