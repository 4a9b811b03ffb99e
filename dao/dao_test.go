package dao

import (
	"context"
	"testing"
	"time"

	"Memeow/models"
	"Memeow/pkg/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var base = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func seedMeme(t *testing.T, db *gorm.DB, id uint64, title string, likes int64, published bool, age time.Duration, tags ...models.Tag) *models.Meme {
	t.Helper()
	m := &models.Meme{
		ID:          id,
		Title:       title,
		AuthorID:    1,
		LikesCount:  likes,
		IsPublished: published,
		Tags:        tags,
		CreatedAt:   base.Add(-age),
		UpdatedAt:   base.Add(-age),
	}
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestRelation_AddRemove(t *testing.T) {
	db := dbtest.New(t)
	likes := NewLikeDAO(db)
	ctx := context.Background()

	require.NoError(t, likes.Add(ctx, 1, 10))
	ok, err := likes.Exists(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	err = likes.Add(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrConflictRetryable)

	n, err := likes.CountByMeme(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	removed, err := likes.Remove(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = likes.Remove(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRelation_FilterAndList(t *testing.T) {
	db := dbtest.New(t)
	favs := NewFavoriteDAO(db)
	ctx := context.Background()

	for _, id := range []uint64{10, 11, 12} {
		require.NoError(t, favs.Add(ctx, 7, id))
	}

	set, err := favs.FilterMemeIDs(ctx, 7, []uint64{10, 12, 99})
	require.NoError(t, err)
	assert.Equal(t, map[uint64]bool{10: true, 12: true}, set)

	ids, total, err := favs.ListMemeIDsByUser(ctx, 7, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, ids, 2)

	empty, err := favs.FilterMemeIDs(ctx, 0, []uint64{10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemeDAO_IncrLikeCountFloor(t *testing.T) {
	db := dbtest.New(t)
	memes := NewMemeDAO(db)
	ctx := context.Background()
	seedMeme(t, db, 1, "a", 1, true, time.Hour)

	require.NoError(t, memes.IncrLikeCount(ctx, 1, -1))
	require.NoError(t, memes.IncrLikeCount(ctx, 1, -1))
	n, err := memes.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, memes.IncrLikeCount(ctx, 1, 3))
	n, _ = memes.GetLikeCount(ctx, 1)
	assert.Equal(t, int64(3), n)
}

func TestMemeDAO_LockForUpdate(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	seedMeme(t, db, 1, "a", 0, false, time.Hour)

	err := db.Transaction(func(tx *gorm.DB) error {
		memes := NewMemeDAO(tx)
		ok, err := memes.LockForUpdate(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = memes.LockForUpdate(ctx, 2)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	})
	require.NoError(t, err)
}

func TestMemeDAO_Recount(t *testing.T) {
	db := dbtest.New(t)
	memes := NewMemeDAO(db)
	likes := NewLikeDAO(db)
	ctx := context.Background()

	seedMeme(t, db, 1, "drifted", 42, true, time.Hour)
	seedMeme(t, db, 2, "ok", 1, true, time.Hour)
	require.NoError(t, likes.Add(ctx, 5, 1))
	require.NoError(t, likes.Add(ctx, 6, 1))
	require.NoError(t, likes.Add(ctx, 5, 2))

	fixed, err := memes.RecountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	n, _ := memes.GetLikeCount(ctx, 1)
	assert.Equal(t, int64(2), n)

	require.NoError(t, memes.IncrLikeCount(ctx, 2, 10))
	_, err = memes.Recount(ctx, 2)
	require.NoError(t, err)
	n, _ = memes.GetLikeCount(ctx, 2)
	assert.Equal(t, int64(1), n)
}

func TestMemeDAO_ListScopeAndOrder(t *testing.T) {
	db := dbtest.New(t)
	memes := NewMemeDAO(db)
	ctx := context.Background()

	seedMeme(t, db, 1, "old popular", 9, true, 48*time.Hour)
	seedMeme(t, db, 2, "new", 1, true, time.Hour)
	seedMeme(t, db, 3, "draft", 50, false, time.Hour)

	items, total, err := memes.List(ctx, &Query{Scope: Published, Order: OrderPopular, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].ID)

	items, total, err = memes.List(ctx, &Query{Scope: Scope{ViewerID: 1}, Order: OrderPopular, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "author sees own drafts")
	assert.Equal(t, uint64(3), items[0].ID)

	items, _, err = memes.List(ctx, &Query{Scope: Published, Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemeDAO_KeywordEscaping(t *testing.T) {
	db := dbtest.New(t)
	memes := NewMemeDAO(db)
	ctx := context.Background()

	seedMeme(t, db, 1, "100% cat", 0, true, time.Hour)
	seedMeme(t, db, 2, "1000 cats", 0, true, time.Hour)

	items, total, err := memes.List(ctx, &Query{Scope: Published, Keyword: "0%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, uint64(1), items[0].ID)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "a!%b!_c!!", escapeLike("a%b_c!"))
}
