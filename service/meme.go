package service

import (
	"context"
	"fmt"
	"strings"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/models"
	"Memeow/pkg/log"
	"Memeow/pkg/snowflake"
	"Memeow/types"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var _ IMemeService = (*MemeService)(nil)

type IMemeService interface {
	Detail(ctx context.Context, v Viewer, id uint64) (*types.MemeDetail, error)
	Random(ctx context.Context, v Viewer) (*models.Meme, error)
	Create(ctx context.Context, v Viewer, req *types.CreateMemeReq) (*models.Meme, error)
	Update(ctx context.Context, v Viewer, id uint64, req *types.UpdateMemeReq) (*models.Meme, error)
	Delete(ctx context.Context, v Viewer, id uint64) error
	MyLikes(ctx context.Context, v Viewer, page int) (*types.MemeItemPage, error)
	MyFavorites(ctx context.Context, v Viewer, page int) (*types.MemeItemPage, error)
	Decorate(ctx context.Context, v Viewer, page *types.MemePage) (*types.MemeItemPage, error)
	Stats(ctx context.Context) (*types.StatsRes, error)
}

type MemeService struct {
	Config      *config.Config
	MemeDAO     *dao.MemeDAO
	TagDAO      *dao.TagDAO
	LikeDAO     *dao.LikeDAO
	FavoriteDAO *dao.FavoriteDAO
	UserDAO     *dao.UserDAO
	Ranking     *RankingService
	Recommend   *RecommendService
	Daily       *DailyPickService
}

func (s *MemeService) visible(ctx context.Context, v Viewer, id uint64) (*models.Meme, error) {
	meme, err := s.MemeDAO.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load meme %d: %w", id, err)
	}
	if !v.CanSee(meme) {
		return nil, ErrMemeNotFound
	}
	return meme, nil
}

// Detail 浏览数 +1，附带相似推荐和当前用户的点赞/收藏状态
func (s *MemeService) Detail(ctx context.Context, v Viewer, id uint64) (*types.MemeDetail, error) {
	meme, err := s.visible(ctx, v, id)
	if err != nil {
		return nil, err
	}
	if err := s.MemeDAO.IncrViewCount(ctx, id); err != nil {
		return nil, fmt.Errorf("incr views: %w", err)
	}
	meme.ViewsCount++

	res := &types.MemeDetail{Meme: meme}
	if res.Similar, err = s.Ranking.similarTo(ctx, v, meme, s.Config.Ranking.SimilarLimit); err != nil {
		return nil, err
	}
	if res.FavoritesCount, err = s.FavoriteDAO.CountByMeme(ctx, id); err != nil {
		return nil, err
	}
	if v.Authenticated() {
		if res.IsLiked, err = s.LikeDAO.Exists(ctx, v.UserID, id); err != nil {
			return nil, err
		}
		if res.IsFavorite, err = s.FavoriteDAO.Exists(ctx, v.UserID, id); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *MemeService) Random(ctx context.Context, _ Viewer) (*models.Meme, error) {
	meme, err := s.Recommend.RandomPublished(ctx)
	if err != nil {
		return nil, err
	}
	if meme == nil {
		return nil, ErrMemeNotFound
	}
	return meme, nil
}

func (s *MemeService) loadTags(ctx context.Context, ids []uint64) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	tags, err := s.TagDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	if len(tags) != len(ids) {
		return nil, ErrValidation.WithMsg("unknown tag id")
	}
	return tags, nil
}

func (s *MemeService) Create(ctx context.Context, v Viewer, req *types.CreateMemeReq) (*models.Meme, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrValidation.WithMsg("title is required")
	}
	tags, err := s.loadTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	meme := &models.Meme{
		ID:          snowflake.GenID(),
		Title:       title,
		Description: req.Description,
		Image:       req.Image,
		AuthorID:    v.UserID,
		Tags:        tags,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		meme.IsPublished = *req.IsPublished
	}
	if err := s.MemeDAO.Create(ctx, meme); err != nil {
		return nil, fmt.Errorf("create meme: %w", err)
	}
	log.L.Info("meme created", zap.Uint64("meme_id", meme.ID), zap.Uint64("author_id", v.UserID))
	return meme, nil
}

// Update 作者或 staff 可修改
func (s *MemeService) Update(ctx context.Context, v Viewer, id uint64, req *types.UpdateMemeReq) (*models.Meme, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}
	meme, err := s.visible(ctx, v, id)
	if err != nil {
		return nil, err
	}
	if !v.CanEdit(meme) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrValidation.WithMsg("title is required")
		}
		meme.Title = title
	}
	if req.Description != nil {
		meme.Description = *req.Description
	}
	if req.IsPublished != nil {
		meme.IsPublished = *req.IsPublished
	}
	if req.TagIDs != nil {
		if meme.Tags, err = s.loadTags(ctx, *req.TagIDs); err != nil {
			return nil, err
		}
	}
	if err := s.MemeDAO.Update(ctx, meme); err != nil {
		return nil, fmt.Errorf("update meme %d: %w", id, err)
	}
	if !meme.IsPublished {
		if err := s.Daily.Invalidate(ctx, id); err != nil {
			log.L.Warn("invalidate daily pick", zap.Uint64("meme_id", id), zap.Error(err))
		}
	}
	return s.MemeDAO.FindByID(ctx, id)
}

func (s *MemeService) Delete(ctx context.Context, v Viewer, id uint64) error {
	if !v.Authenticated() {
		return ErrUnauthorized
	}
	meme, err := s.visible(ctx, v, id)
	if err != nil {
		return err
	}
	if !v.CanEdit(meme) {
		return ErrForbidden
	}
	if err := s.MemeDAO.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete meme %d: %w", id, err)
	}
	if err := s.Daily.Invalidate(ctx, id); err != nil {
		log.L.Warn("invalidate daily pick", zap.Uint64("meme_id", id), zap.Error(err))
	}
	log.L.Info("meme deleted", zap.Uint64("meme_id", id), zap.Uint64("by", v.UserID))
	return nil
}

type memeIDLister interface {
	ListMemeIDsByUser(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error)
}

func (s *MemeService) userList(ctx context.Context, v Viewer, page int, rel memeIDLister) (*types.MemeItemPage, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}
	page, offset := s.Ranking.pageOffset(page)
	size := s.Config.Ranking.PageSize

	ids, total, err := rel.ListMemeIDsByUser(ctx, v.UserID, size, offset)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	memes, err := s.MemeDAO.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	visible := make([]*models.Meme, 0, len(memes))
	for _, m := range memes {
		if v.CanSee(m) {
			visible = append(visible, m)
		}
	}
	return s.Decorate(ctx, v, &types.MemePage{Items: visible, Total: total, Page: page, PageSize: size})
}

func (s *MemeService) MyLikes(ctx context.Context, v Viewer, page int) (*types.MemeItemPage, error) {
	return s.userList(ctx, v, page, s.LikeDAO)
}

func (s *MemeService) MyFavorites(ctx context.Context, v Viewer, page int) (*types.MemeItemPage, error) {
	return s.userList(ctx, v, page, s.FavoriteDAO)
}

// Decorate 给列表补上 is_liked / is_favorite，匿名用户全部为 false
func (s *MemeService) Decorate(ctx context.Context, v Viewer, page *types.MemePage) (*types.MemeItemPage, error) {
	res := &types.MemeItemPage{
		Items:    make([]types.MemeItem, 0, len(page.Items)),
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	liked, favorite := map[uint64]bool{}, map[uint64]bool{}
	if v.Authenticated() && len(page.Items) > 0 {
		ids := make([]uint64, 0, len(page.Items))
		for _, m := range page.Items {
			ids = append(ids, m.ID)
		}
		var err error
		if liked, err = s.LikeDAO.FilterMemeIDs(ctx, v.UserID, ids); err != nil {
			return nil, err
		}
		if favorite, err = s.FavoriteDAO.FilterMemeIDs(ctx, v.UserID, ids); err != nil {
			return nil, err
		}
	}
	for _, m := range page.Items {
		res.Items = append(res.Items, types.MemeItem{Meme: m, IsLiked: liked[m.ID], IsFavorite: favorite[m.ID]})
	}
	return res, nil
}

// Stats 热门 meme、活跃用户、热门标签，三个查询并发执行
func (s *MemeService) Stats(ctx context.Context) (*types.StatsRes, error) {
	res := &types.StatsRes{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		memes, _, err := s.MemeDAO.List(gctx, &dao.Query{Scope: dao.Published, Order: dao.OrderPopular, Limit: 10})
		res.PopularMemes = memes
		return err
	})
	g.Go(func() error {
		users, err := s.UserDAO.Active(gctx, 5)
		res.ActiveUsers = users
		return err
	})
	g.Go(func() error {
		tags, err := s.TagDAO.Popular(gctx, 10)
		res.PopularTags = tags
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return res, nil
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
