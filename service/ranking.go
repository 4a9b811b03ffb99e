package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/models"
	"Memeow/types"
)

var _ IRankingService = (*RankingService)(nil)

type IRankingService interface {
	Popular(ctx context.Context, v Viewer, limit int, since *time.Time) (*types.MemePage, error)
	Latest(ctx context.Context, v Viewer, limit int) (*types.MemePage, error)
	ByTag(ctx context.Context, v Viewer, slug string, page int) (*types.MemePage, error)
	Search(ctx context.Context, v Viewer, query string, page int) (*types.MemePage, error)
	Similar(ctx context.Context, v Viewer, memeID uint64, limit int) ([]*models.Meme, error)
}

type RankingService struct {
	Config  *config.Config
	MemeDAO *dao.MemeDAO
	TagDAO  *dao.TagDAO
}

func (s *RankingService) clampLimit(limit int) int {
	max := s.Config.Ranking.MaxLimit
	if limit <= 0 {
		return s.Config.Ranking.PageSize
	}
	if limit > max {
		return max
	}
	return limit
}

// pageOffset 页码从 1 开始，小于 1 按第一页处理
func (s *RankingService) pageOffset(page int) (int, int) {
	if page < 1 {
		page = 1
	}
	return page, (page - 1) * s.Config.Ranking.PageSize
}

func (s *RankingService) list(ctx context.Context, q *dao.Query) (*types.MemePage, error) {
	items, total, err := s.MemeDAO.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list memes: %w", err)
	}
	return &types.MemePage{Items: items, Total: total}, nil
}

// Popular 点赞数倒序，相同按发布时间倒序；since 为空不限时间
func (s *RankingService) Popular(ctx context.Context, v Viewer, limit int, since *time.Time) (*types.MemePage, error) {
	return s.list(ctx, &dao.Query{
		Scope: v.scope(),
		Since: since,
		Order: dao.OrderPopular,
		Limit: s.clampLimit(limit),
	})
}

func (s *RankingService) Latest(ctx context.Context, v Viewer, limit int) (*types.MemePage, error) {
	return s.list(ctx, &dao.Query{
		Scope: v.scope(),
		Order: dao.OrderLatest,
		Limit: s.clampLimit(limit),
	})
}

func (s *RankingService) ByTag(ctx context.Context, v Viewer, slug string, page int) (*types.MemePage, error) {
	tag, err := s.TagDAO.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("load tag %q: %w", slug, err)
	}
	if tag == nil {
		return nil, ErrTagNotFound
	}

	page, offset := s.pageOffset(page)
	res, err := s.list(ctx, &dao.Query{
		Scope:  v.scope(),
		TagIDs: []uint64{tag.ID},
		Order:  dao.OrderLatest,
		Limit:  s.Config.Ranking.PageSize,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	res.Page, res.PageSize = page, s.Config.Ranking.PageSize
	return res, nil
}

// Search 标题、描述、标签名的子串匹配，不区分大小写，不按单词边界
func (s *RankingService) Search(ctx context.Context, v Viewer, query string, page int) (*types.MemePage, error) {
	page, offset := s.pageOffset(page)
	query = strings.TrimSpace(query)
	if query == "" {
		return &types.MemePage{Items: []*models.Meme{}, Page: page, PageSize: s.Config.Ranking.PageSize}, nil
	}

	res, err := s.list(ctx, &dao.Query{
		Scope:   v.scope(),
		Keyword: query,
		Order:   dao.OrderLatest,
		Limit:   s.Config.Ranking.PageSize,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	res.Page, res.PageSize = page, s.Config.Ranking.PageSize
	return res, nil
}

// Similar 至少共享一个标签，不含自己
func (s *RankingService) Similar(ctx context.Context, v Viewer, memeID uint64, limit int) ([]*models.Meme, error) {
	meme, err := s.MemeDAO.FindByID(ctx, memeID)
	if err != nil {
		return nil, fmt.Errorf("load meme %d: %w", memeID, err)
	}
	if !v.CanSee(meme) {
		return nil, ErrMemeNotFound
	}
	return s.similarTo(ctx, v, meme, limit)
}

func (s *RankingService) similarTo(ctx context.Context, v Viewer, meme *models.Meme, limit int) ([]*models.Meme, error) {
	if len(meme.Tags) == 0 {
		return []*models.Meme{}, nil
	}
	tagIDs := make([]uint64, 0, len(meme.Tags))
	for _, t := range meme.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	res, err := s.list(ctx, &dao.Query{
		Scope:     v.scope(),
		TagIDs:    tagIDs,
		ExcludeID: meme.ID,
		Order:     dao.OrderLatest,
		Limit:     s.clampLimit(limit),
	})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
