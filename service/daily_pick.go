package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"slices"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/dao/cache"
	"Memeow/models"
	"Memeow/pkg/clock"
	"Memeow/pkg/log"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

var _ IDailyPickService = (*DailyPickService)(nil)

type IDailyPickService interface {
	MemeOfTheDay(ctx context.Context) (*models.Meme, error)
	Invalidate(ctx context.Context, memeID uint64) error
}

// DailyPickService 全站每日一图，同一天所有匿名请求拿到同一个结果
type DailyPickService struct {
	Config  *config.Config
	Clock   clock.Clock
	MemeDAO *dao.MemeDAO
	Picks   *cache.PickStorage
}

// MemeOfTheDay 没有任何已发布 meme 时返回 nil, nil
func (s *DailyPickService) MemeOfTheDay(ctx context.Context) (*models.Meme, error) {
	conf := s.Config.Ranking
	seed := clock.DaySeed(s.Clock.Now(), conf.Location())

	id, ok, err := s.Picks.GetDaily(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("daily pick cache: %w", err)
	}
	if ok {
		meme, err := s.MemeDAO.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load daily pick %d: %w", id, err)
		}
		// 缓存的 meme 被删除或下架时重新计算
		if meme != nil && meme.IsPublished {
			pickCacheTotal.WithLabelValues("daily", "hit").Inc()
			return meme, nil
		}
	}
	pickCacheTotal.WithLabelValues("daily", "miss").Inc()

	meme, err := s.compute(ctx, seed)
	if err != nil {
		return nil, err
	}
	if meme == nil {
		return nil, nil
	}
	if err := s.Picks.SetDaily(ctx, seed, meme.ID, conf.PickTTL); err != nil {
		return nil, fmt.Errorf("daily pick cache: %w", err)
	}
	log.L.Info("meme of the day", zap.Int("seed", seed), zap.Uint64("meme_id", meme.ID))
	return meme, nil
}

// Invalidate 今天选中的 meme 被删除或下架时清掉缓存
func (s *DailyPickService) Invalidate(ctx context.Context, memeID uint64) error {
	seed := clock.DaySeed(s.Clock.Now(), s.Config.Ranking.Location())
	id, ok, err := s.Picks.GetDaily(ctx, seed)
	if err != nil || !ok || id != memeID {
		return err
	}
	return s.Picks.DelDaily(ctx, seed)
}

// compute 最近窗口内点赞前 N 名中按日期种子取一个；窗口内为空时从全部已发布中取
func (s *DailyPickService) compute(ctx context.Context, seed int) (*models.Meme, error) {
	conf := s.Config.Ranking
	// 窗口从当天零点往前算，同一天内候选集合不随时刻变化
	since := clock.StartOfDay(s.Clock.Now(), conf.Location()).Add(-conf.DailyWindow)

	pool, err := s.MemeDAO.TopIDs(ctx, &dao.Query{
		Scope: dao.Published,
		Since: &since,
		Order: dao.OrderPopular,
		Limit: conf.DailyPoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("daily pool: %w", err)
	}
	if len(pool) > 0 {
		return s.MemeDAO.FindByID(ctx, poolPick(seed, pool))
	}

	all := &dao.Query{Scope: dao.Published, Order: dao.OrderID}
	total, err := s.MemeDAO.CountWhere(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("count published: %w", err)
	}
	if total == 0 {
		return nil, nil
	}
	return s.MemeDAO.Nth(ctx, all, int64(fallbackIndex(seed)%uint64(total)))
}

func seedDigest(seed int) *xxhash.Digest {
	d := xxhash.New()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seed))
	_, _ = d.Write(buf[:])
	return d
}

// poolPick 只由日期和候选集合决定，与候选的排列顺序无关
func poolPick(seed int, ids []uint64) uint64 {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)

	d := seedDigest(seed)
	var buf [8]byte
	for _, id := range sorted {
		binary.BigEndian.PutUint64(buf[:], id)
		_, _ = d.Write(buf[:])
	}
	return sorted[d.Sum64()%uint64(len(sorted))]
}

func fallbackIndex(seed int) uint64 {
	d := seedDigest(seed)
	_, _ = d.WriteString("fallback")
	return d.Sum64()
}
