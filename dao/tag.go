package dao

import (
	"context"

	"Memeow/models"

	"gorm.io/gorm"
)

type TagDAO struct {
	Repo[models.Tag]
}

func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{Repo: NewRepo[models.Tag](db)}
}

// FindBySlug 不存在返回 nil, nil
func (d *TagDAO) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	return d.FindByWhere(ctx, "slug = ?", slug)
}

// FindByNameOrSlug 名称或 slug 任一冲突即返回
func (d *TagDAO) FindByNameOrSlug(ctx context.Context, name, slug string) (*models.Tag, error) {
	return d.FindByWhere(ctx, "name = ? OR slug = ?", name, slug)
}

func (d *TagDAO) FindByIDs(ctx context.Context, ids []uint64) ([]models.Tag, error) {
	tags := []models.Tag{}
	if len(ids) == 0 {
		return tags, nil
	}
	err := d.Db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (d *TagDAO) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := d.Db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// TagCount 标签及其关联的 meme 数量
type TagCount struct {
	models.Tag
	MemeCount int64 `gorm:"column:meme_count" json:"meme_count"`
}

// Popular 按 meme 数量倒序
func (d *TagDAO) Popular(ctx context.Context, limit int) ([]TagCount, error) {
	rows := []TagCount{}
	err := d.Db.WithContext(ctx).
		Table("tags").
		Select("tags.id, tags.name, tags.slug, COUNT(meme_tags.meme_id) AS meme_count").
		Joins("LEFT JOIN meme_tags ON meme_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.slug").
		Order("meme_count DESC, tags.name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
