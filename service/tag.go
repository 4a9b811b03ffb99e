package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Memeow/dao"
	"Memeow/models"
	"Memeow/pkg/snowflake"
	"Memeow/types"

	"gorm.io/gorm"
)

var _ ITagService = (*TagService)(nil)

type ITagService interface {
	List(ctx context.Context) ([]models.Tag, error)
	Create(ctx context.Context, v Viewer, req *types.CreateTagReq) (*models.Tag, error)
}

type TagService struct {
	TagDAO *dao.TagDAO
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	return s.TagDAO.List(ctx)
}

// Create slug 为空时由名称生成，名称或 slug 重复返回冲突
func (s *TagService) Create(ctx context.Context, v Viewer, req *types.CreateTagReq) (*models.Tag, error) {
	if !v.Authenticated() {
		return nil, ErrUnauthorized
	}
	name := strings.TrimSpace(req.Name)
	slug := models.Slugify(req.Slug)
	if slug == "" {
		slug = models.Slugify(name)
	}
	if name == "" || slug == "" {
		return nil, ErrValidation.WithMsg("tag name must contain letters or digits")
	}

	existing, err := s.TagDAO.FindByNameOrSlug(ctx, name, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict.WithMsg("tag already exists")
	}

	tag := &models.Tag{ID: snowflake.GenID(), Name: name, Slug: slug}
	err = s.TagDAO.Create(ctx, tag)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrConflict.WithMsg("tag already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}
