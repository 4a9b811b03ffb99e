package service

import (
	"context"
	"testing"
	"time"

	"Memeow/config"
	"Memeow/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemeOfTheDay_Empty(t *testing.T) {
	e := newEnv(t)
	e.newMeme(t, 1, "draft", draft())

	m, err := e.daily.MemeOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMemeOfTheDay_PoolPick(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := uint64(1); i <= 12; i++ {
		e.newMeme(t, i, "m", likes(int64(i)), age(time.Duration(i)*time.Hour))
	}
	e.newMeme(t, 99, "old", likes(1000), age(30*24*time.Hour))

	m, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	require.NotNil(t, m)

	// 候选池为最近 7 天点赞前 10：12..3
	pool := []uint64{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}
	seed := clock.DaySeed(base, time.UTC)
	assert.Equal(t, poolPick(seed, pool), m.ID)
}

func TestMemeOfTheDay_StableWithinDay(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := uint64(1); i <= 8; i++ {
		e.newMeme(t, i, "m", likes(int64(i)))
	}

	first, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)

	// 缓存命中时不受点赞变化影响
	require.NoError(t, e.db.Exec("UPDATE memes SET likes_count = 100 - likes_count").Error)
	e.clock.Add(6 * time.Hour)
	cached, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, cached.ID)

	// 清空缓存后按同一天重新计算，候选集合不变则结果不变
	e.cache.Flush()
	again, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
}

func TestMemeOfTheDay_NewDayNewKey(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := uint64(1); i <= 5; i++ {
		e.newMeme(t, i, "m", likes(int64(i)))
	}
	_, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)

	e.clock.Add(24 * time.Hour)
	next, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)

	seed := clock.DaySeed(e.clock.Now(), time.UTC)
	id, ok, err := e.daily.Picks.GetDaily(ctx, seed)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, next.ID, id)

	pool := []uint64{5, 4, 3, 2, 1}
	assert.Equal(t, poolPick(seed, pool), next.ID)
}

func TestMemeOfTheDay_FallbackToAllPublished(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	month := 30 * 24 * time.Hour
	e.newMeme(t, 1, "a", age(month))
	e.newMeme(t, 2, "b", age(month))
	e.newMeme(t, 3, "c", age(month))
	e.newMeme(t, 4, "draft", draft())

	m, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	require.NotNil(t, m)

	seed := clock.DaySeed(base, time.UTC)
	expected := []uint64{1, 2, 3}[fallbackIndex(seed)%3]
	assert.Equal(t, expected, m.ID)
}

func TestMemeOfTheDay_CachedUnpublishedIsMiss(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.newMeme(t, 1, "a")
	e.newMeme(t, 2, "hidden", draft())

	seed := clock.DaySeed(base, time.UTC)
	require.NoError(t, e.daily.Picks.SetDaily(ctx, seed, 2, time.Hour))

	m, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.ID)
}

func TestMemeOfTheDay_ConfiguredTimezone(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	conf, err := config.Parse([]byte("ranking:\n  timezone: Asia/Tokyo\n"))
	require.NoError(t, err)
	e.daily.Config = conf
	e.newMeme(t, 1, "a")

	// UTC 还是 19 号，东京已经是 20 号
	e.clock.Set(time.Date(2026, time.October, 19, 20, 0, 0, 0, time.UTC))
	_, err = e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)

	_, ok, err := e.daily.Picks.GetDaily(ctx, 20261020)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = e.daily.Picks.GetDaily(ctx, 20261019)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPoolPick_OrderIndependent(t *testing.T) {
	a := poolPick(20261019, []uint64{7, 8, 9})
	assert.Equal(t, a, poolPick(20261019, []uint64{9, 7, 8}))
	assert.Contains(t, []uint64{7, 8, 9}, a)

	// 不同日期在足够大的候选集上不会总是同一个
	pool := []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	seen := map[uint64]bool{}
	for day := 1; day <= 28; day++ {
		seen[poolPick(20260200+day, pool)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestMemeOfTheDay_InvalidatedOnDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.newMeme(t, 1, "a")
	e.newMeme(t, 2, "b")

	picked, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	require.NoError(t, e.meme.Delete(ctx, Viewer{UserID: 1, Staff: true}, picked.ID))

	seed := clock.DaySeed(base, time.UTC)
	_, ok, err := e.daily.Picks.GetDaily(ctx, seed)
	require.NoError(t, err)
	assert.False(t, ok)

	next, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, picked.ID, next.ID)
}

// 候选窗口从当天零点起算，早晚重新计算得到同一批候选
func TestMemeOfTheDay_WindowAnchoredToDay(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	// 10 月 12 日 03:00，离窗口起点 10 月 12 日零点只差三小时
	e.newMeme(t, 1, "edge", likes(50), age(7*24*time.Hour+9*time.Hour))
	e.newMeme(t, 2, "fresh", likes(1))
	// 10 月 11 日 23:00，任何时刻都在窗口外
	e.newMeme(t, 3, "stale", likes(500), age(7*24*time.Hour+13*time.Hour))

	seed := clock.DaySeed(base, time.UTC)
	want := poolPick(seed, []uint64{1, 2})

	e.clock.Set(time.Date(2026, time.October, 19, 1, 0, 0, 0, time.UTC))
	morning, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, morning.ID)

	e.cache.Flush()
	e.clock.Set(time.Date(2026, time.October, 19, 23, 0, 0, 0, time.UTC))
	evening, err := e.daily.MemeOfTheDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, evening.ID)
}
