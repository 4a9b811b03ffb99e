package service

import (
	"context"
	"errors"
	"fmt"

	"Memeow/dao"
	"Memeow/pkg/log"
	"Memeow/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ IEngagementService = (*EngagementService)(nil)

type IEngagementService interface {
	ToggleLike(ctx context.Context, v Viewer, memeID uint64) (*types.LikeResult, error)
	ToggleFavorite(ctx context.Context, v Viewer, memeID uint64) (*types.FavoriteResult, error)
	FavoriteCount(ctx context.Context, v Viewer, memeID uint64) (int64, error)
	Recount(ctx context.Context, memeID uint64) (int64, error)
	RecountAll(ctx context.Context) (int64, error)
}

type EngagementService struct {
	MemeDAO     *dao.MemeDAO
	LikeDAO     *dao.LikeDAO
	FavoriteDAO *dao.FavoriteDAO
}

// checkTarget 登录且 meme 对当前用户可见
func (s *EngagementService) checkTarget(ctx context.Context, v Viewer, memeID uint64) error {
	if !v.Authenticated() {
		return ErrUnauthorized
	}
	meme, err := s.MemeDAO.FindByID(ctx, memeID)
	if err != nil {
		return fmt.Errorf("load meme %d: %w", memeID, err)
	}
	if !v.CanSee(meme) {
		return ErrMemeNotFound
	}
	return nil
}

// lockTarget 先锁 meme 行再动关系表，InnoDB 下未命中的 DELETE 只拿间隙锁，不加这把锁并发 INSERT 会死锁
func lockTarget(ctx context.Context, memes *dao.MemeDAO, memeID uint64) error {
	ok, err := memes.LockForUpdate(ctx, memeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMemeNotFound
	}
	return nil
}

// ToggleLike 有则删、无则插，计数在同一事务内调整
//
// 插入撞上唯一键说明并发请求已经点过赞并负责了 +1，这里只返回 liked=true
func (s *EngagementService) ToggleLike(ctx context.Context, v Viewer, memeID uint64) (*types.LikeResult, error) {
	if err := s.checkTarget(ctx, v, memeID); err != nil {
		return nil, err
	}

	res := &types.LikeResult{}
	err := s.LikeDAO.Transaction(ctx, func(tx *gorm.DB) error {
		likes := s.LikeDAO.WithTx(tx)
		memes := s.MemeDAO.WithTx(tx)

		if err := lockTarget(ctx, memes, memeID); err != nil {
			return err
		}
		removed, err := likes.Remove(ctx, v.UserID, memeID)
		if err != nil {
			return err
		}
		if removed {
			res.Liked = false
			if err := memes.IncrLikeCount(ctx, memeID, -1); err != nil {
				return err
			}
		} else {
			err := likes.Add(ctx, v.UserID, memeID)
			switch {
			case errors.Is(err, dao.ErrConflictRetryable):
				toggleConflictTotal.WithLabelValues("like").Inc()
				res.Liked = true
			case err != nil:
				return err
			default:
				res.Liked = true
				if err := memes.IncrLikeCount(ctx, memeID, 1); err != nil {
					return err
				}
			}
		}

		count, err := memes.GetLikeCount(ctx, memeID)
		if err != nil {
			return err
		}
		res.LikesCount = count
		return nil
	})
	if errors.Is(err, ErrMemeNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	toggleTotal.WithLabelValues("like", stateLabel(res.Liked)).Inc()
	log.L.Debug("toggle like",
		zap.Uint64("user_id", v.UserID),
		zap.Uint64("meme_id", memeID),
		zap.Bool("liked", res.Liked),
		zap.Int64("likes_count", res.LikesCount),
	)
	return res, nil
}

// ToggleFavorite 与点赞相同，但没有冗余计数
func (s *EngagementService) ToggleFavorite(ctx context.Context, v Viewer, memeID uint64) (*types.FavoriteResult, error) {
	if err := s.checkTarget(ctx, v, memeID); err != nil {
		return nil, err
	}

	res := &types.FavoriteResult{}
	err := s.FavoriteDAO.Transaction(ctx, func(tx *gorm.DB) error {
		favorites := s.FavoriteDAO.WithTx(tx)
		if err := lockTarget(ctx, s.MemeDAO.WithTx(tx), memeID); err != nil {
			return err
		}
		removed, err := favorites.Remove(ctx, v.UserID, memeID)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}
		err = favorites.Add(ctx, v.UserID, memeID)
		if errors.Is(err, dao.ErrConflictRetryable) {
			toggleConflictTotal.WithLabelValues("favorite").Inc()
			err = nil
		}
		res.Favorited = err == nil
		return err
	})
	if errors.Is(err, ErrMemeNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	toggleTotal.WithLabelValues("favorite", stateLabel(res.Favorited)).Inc()
	return res, nil
}

// FavoriteCount 收藏数按需统计
func (s *EngagementService) FavoriteCount(ctx context.Context, v Viewer, memeID uint64) (int64, error) {
	meme, err := s.MemeDAO.FindByID(ctx, memeID)
	if err != nil {
		return 0, err
	}
	if !v.CanSee(meme) {
		return 0, ErrMemeNotFound
	}
	return s.FavoriteDAO.CountByMeme(ctx, memeID)
}

func (s *EngagementService) Recount(ctx context.Context, memeID uint64) (int64, error) {
	exist, err := s.MemeDAO.IsExist(ctx, "id = ?", memeID)
	if err != nil {
		return 0, err
	}
	if !exist {
		return 0, ErrMemeNotFound
	}
	if _, err := s.MemeDAO.Recount(ctx, memeID); err != nil {
		return 0, fmt.Errorf("recount meme %d: %w", memeID, err)
	}
	return s.MemeDAO.GetLikeCount(ctx, memeID)
}

// RecountAll 返回 UPDATE 影响的行数
func (s *EngagementService) RecountAll(ctx context.Context) (int64, error) {
	n, err := s.MemeDAO.RecountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("recount all: %w", err)
	}
	log.L.Info("recount likes", zap.Int64("memes", n))
	return n, nil
}
