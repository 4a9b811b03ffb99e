package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	dailyPickKey    = "meme_of_the_day"
	personalPickKey = "personal_meme_of_the_day"
)

// PickStorage 每日推荐结果缓存，只保存 meme id
type PickStorage struct {
	cache Cache
}

func NewPickStorage(c Cache) *PickStorage {
	return &PickStorage{cache: c}
}

// GetDaily 全站每日推荐
// @params seed 日期种子 yyyymmdd
func (p *PickStorage) GetDaily(ctx context.Context, seed int) (uint64, bool, error) {
	return p.get(ctx, p.dailyName(seed))
}

func (p *PickStorage) SetDaily(ctx context.Context, seed int, memeID uint64, ttl time.Duration) error {
	return p.cache.Set(ctx, p.dailyName(seed), strconv.FormatUint(memeID, 10), ttl)
}

func (p *PickStorage) DelDaily(ctx context.Context, seed int) error {
	return p.cache.Del(ctx, p.dailyName(seed))
}

// GetPersonal 用户个人每日推荐
func (p *PickStorage) GetPersonal(ctx context.Context, uid uint64) (uint64, bool, error) {
	return p.get(ctx, p.personalName(uid))
}

func (p *PickStorage) SetPersonal(ctx context.Context, uid uint64, memeID uint64, ttl time.Duration) error {
	return p.cache.Set(ctx, p.personalName(uid), strconv.FormatUint(memeID, 10), ttl)
}

func (p *PickStorage) get(ctx context.Context, key string) (uint64, bool, error) {
	val, ok, err := p.cache.Get(ctx, key)
	if err != nil || !ok {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// 脏数据按未命中处理
		return 0, false, nil
	}
	return id, true, nil
}

// meme_of_the_day:20261019
func (p *PickStorage) dailyName(seed int) string {
	return fmt.Sprintf("%s:%d", dailyPickKey, seed)
}

// personal_meme_of_the_day:42
func (p *PickStorage) personalName(uid uint64) string {
	return fmt.Sprintf("%s:%d", personalPickKey, uid)
}
