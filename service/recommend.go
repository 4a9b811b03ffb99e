package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/dao/cache"
	"Memeow/models"
)

var _ IRecommendService = (*RecommendService)(nil)

type IRecommendService interface {
	PersonalPick(ctx context.Context, v Viewer) (*models.Meme, error)
	RandomPublished(ctx context.Context) (*models.Meme, error)
}

type RecommendService struct {
	Config  *config.Config
	MemeDAO *dao.MemeDAO
	Picks   *cache.PickStorage
}

var randN = rand.Int64N

// PersonalPick 用户的每日推荐，缓存 24 小时
//
// 优先从用户点赞过的标签里挑没点过赞的，其次任意已发布的
func (s *RecommendService) PersonalPick(ctx context.Context, v Viewer) (*models.Meme, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}

	id, ok, err := s.Picks.GetPersonal(ctx, v.UserID)
	if err != nil {
		return nil, fmt.Errorf("personal pick cache: %w", err)
	}
	if ok {
		meme, err := s.MemeDAO.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load personal pick %d: %w", id, err)
		}
		if meme != nil && meme.IsPublished {
			pickCacheTotal.WithLabelValues("personal", "hit").Inc()
			return meme, nil
		}
	}
	pickCacheTotal.WithLabelValues("personal", "miss").Inc()

	meme, err := s.recommended(ctx, v.UserID)
	if err != nil {
		return nil, err
	}
	if meme == nil {
		if meme, err = s.RandomPublished(ctx); err != nil {
			return nil, err
		}
	}
	if meme == nil {
		return nil, nil
	}

	if err := s.Picks.SetPersonal(ctx, v.UserID, meme.ID, s.Config.Ranking.PickTTL); err != nil {
		return nil, fmt.Errorf("personal pick cache: %w", err)
	}
	return meme, nil
}

func (s *RecommendService) recommended(ctx context.Context, userID uint64) (*models.Meme, error) {
	n, err := s.MemeDAO.CountRecommended(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count recommended: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.MemeDAO.NthRecommended(ctx, userID, randN(n))
}

// RandomPublished 在所有已发布中均匀随机，没有时返回 nil, nil
func (s *RecommendService) RandomPublished(ctx context.Context) (*models.Meme, error) {
	all := &dao.Query{Scope: dao.Published, Order: dao.OrderID}
	n, err := s.MemeDAO.CountWhere(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("count published: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return s.MemeDAO.Nth(ctx, all, randN(n))
}
