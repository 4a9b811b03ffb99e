package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalPick_RequiresAuth(t *testing.T) {
	e := newEnv(t)
	_, err := e.recommend.PersonalPick(context.Background(), Anonymous)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// 点赞过 cats 下的 D，推荐只能来自 cats 下没点过赞的 A、B
func TestPersonalPick_TaggedTier(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cats := e.newTag(t, 1, "cats")
	dogs := e.newTag(t, 2, "dogs")
	a := e.newMeme(t, 1, "A", likes(5), tagged(cats))
	b := e.newMeme(t, 2, "B", likes(3), tagged(cats))
	e.newMeme(t, 3, "C", likes(10), tagged(dogs))
	d := e.newMeme(t, 4, "D", tagged(cats))
	e.newMeme(t, 5, "E", tagged(cats), draft())
	u := Viewer{UserID: 42}
	e.like(t, u.UserID, d.ID)

	allowed := []uint64{a.ID, b.ID}
	for i := 0; i < 30; i++ {
		e.cache.Flush()
		m, err := e.recommend.PersonalPick(ctx, u)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Contains(t, allowed, m.ID)
	}
}

func TestPersonalPick_FallbackTier(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	cats := e.newTag(t, 1, "cats")
	a := e.newMeme(t, 1, "A", tagged(cats))
	b := e.newMeme(t, 2, "B")
	e.newMeme(t, 3, "hidden", draft())
	u := Viewer{UserID: 42}

	// 没有点赞记录
	for i := 0; i < 20; i++ {
		e.cache.Flush()
		m, err := e.recommend.PersonalPick(ctx, u)
		require.NoError(t, err)
		assert.Contains(t, []uint64{a.ID, b.ID}, m.ID)
	}

	// 点赞过的标签下已经没有别的了
	e.like(t, u.UserID, a.ID)
	for i := 0; i < 20; i++ {
		e.cache.Flush()
		m, err := e.recommend.PersonalPick(ctx, u)
		require.NoError(t, err)
		assert.Contains(t, []uint64{a.ID, b.ID}, m.ID)
	}
}

func TestPersonalPick_Cached(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := uint64(1); i <= 20; i++ {
		e.newMeme(t, i, "m")
	}
	u := Viewer{UserID: 42}

	first, err := e.recommend.PersonalPick(ctx, u)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		m, err := e.recommend.PersonalPick(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, first.ID, m.ID)
	}

	// 与全站每日推荐使用不同的 key
	_, ok, err := e.recommend.Picks.GetPersonal(ctx, u.UserID)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = e.recommend.Picks.GetPersonal(ctx, 43)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersonalPick_Nothing(t *testing.T) {
	e := newEnv(t)
	e.newMeme(t, 1, "hidden", draft())

	m, err := e.recommend.PersonalPick(context.Background(), Viewer{UserID: 1})
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRandomPublished(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.meme.Random(ctx, Anonymous)
	assert.ErrorIs(t, err, ErrNotFound)

	e.newMeme(t, 1, "a")
	e.newMeme(t, 2, "hidden", draft())
	for i := 0; i < 10; i++ {
		m, err := e.meme.Random(ctx, Anonymous)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), m.ID)
	}
}
