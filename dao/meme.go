package dao

import (
	"context"
	"strings"
	"time"

	"Memeow/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope 列表可见性：已发布的，或者自己的；staff 可见全部
type Scope struct {
	ViewerID uint64
	Staff    bool
}

func (s Scope) apply(db *gorm.DB) *gorm.DB {
	if s.Staff {
		return db
	}
	if s.ViewerID != 0 {
		return db.Where("(memes.is_published = ? OR memes.author_id = ?)", true, s.ViewerID)
	}
	return db.Where("memes.is_published = ?", true)
}

// Published 只看已发布，每日推荐等全站结果使用
var Published = Scope{}

type MemeDAO struct {
	Repo[models.Meme]
}

func NewMemeDAO(db *gorm.DB) *MemeDAO {
	return &MemeDAO{Repo: NewRepo[models.Meme](db)}
}

func (d *MemeDAO) WithTx(tx *gorm.DB) *MemeDAO {
	return NewMemeDAO(tx)
}

// Create 创建 meme 并写入标签关联
func (d *MemeDAO) Create(ctx context.Context, meme *models.Meme) error {
	return d.Db.WithContext(ctx).Create(meme).Error
}

// FindByID 带标签，不存在返回 nil, nil
func (d *MemeDAO) FindByID(ctx context.Context, id uint64) (*models.Meme, error) {
	var items []*models.Meme
	err := d.Db.WithContext(ctx).Preload("Tags").Where("id = ?", id).Limit(1).Find(&items).Error
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return items[0], nil
}

// FindByIDs 按 ids 的顺序返回，不存在的跳过
func (d *MemeDAO) FindByIDs(ctx context.Context, ids []uint64) ([]*models.Meme, error) {
	if len(ids) == 0 {
		return []*models.Meme{}, nil
	}
	var memes []*models.Meme
	if err := d.Db.WithContext(ctx).Preload("Tags").Where("id IN ?", ids).Find(&memes).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]*models.Meme, len(memes))
	for _, m := range memes {
		byID[m.ID] = m
	}
	ordered := make([]*models.Meme, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

// Update 更新基本字段并整体替换标签
func (d *MemeDAO) Update(ctx context.Context, meme *models.Meme) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Meme{}).Where("id = ?", meme.ID).Updates(map[string]any{
			"title":        meme.Title,
			"description":  meme.Description,
			"is_published": meme.IsPublished,
			"updated_at":   time.Now().UTC(),
		}).Error
		if err != nil {
			return err
		}
		return tx.Model(meme).Association("Tags").Replace(meme.Tags)
	})
}

// Delete 连同标签关联、点赞、收藏一起删除
func (d *MemeDAO) Delete(ctx context.Context, id uint64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meme_id = ?", id).Delete(&models.MemeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meme_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("meme_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Meme{}).Error
	})
}

// LockForUpdate 在事务内锁住 meme 行，同一 meme 上的点赞、收藏切换因此串行执行；meme 不存在返回 false
func (d *MemeDAO) LockForUpdate(ctx context.Context, id uint64) (bool, error) {
	var ids []uint64
	err := d.Db.WithContext(ctx).Model(&models.Meme{}).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		Limit(1).
		Pluck("id", &ids).Error
	return len(ids) > 0, err
}

// IncrLikeCount 点赞计数增减，结果不小于 0
func (d *MemeDAO) IncrLikeCount(ctx context.Context, id uint64, delta int64) error {
	return d.Db.WithContext(ctx).Model(&models.Meme{}).
		Where("id = ?", id).
		UpdateColumn("likes_count",
			gorm.Expr("CASE WHEN likes_count + ? < 0 THEN 0 ELSE likes_count + ? END", delta, delta)).Error
}

func (d *MemeDAO) GetLikeCount(ctx context.Context, id uint64) (int64, error) {
	var n int64
	err := d.Model(ctx).Where("id = ?", id).Select("likes_count").Scan(&n).Error
	return n, err
}

// IncrViewCount 浏览数 +1
func (d *MemeDAO) IncrViewCount(ctx context.Context, id uint64) error {
	return d.Db.WithContext(ctx).Model(&models.Meme{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

// Recount 以 likes 表为准重算计数
func (d *MemeDAO) Recount(ctx context.Context, id uint64) (int64, error) {
	res := d.Db.WithContext(ctx).Model(&models.Meme{}).
		Where("id = ?", id).
		UpdateColumn("likes_count",
			gorm.Expr("(SELECT COUNT(*) FROM likes WHERE likes.meme_id = memes.id)"))
	return res.RowsAffected, res.Error
}

// RecountAll 全表重算，返回计数被修正的行数
func (d *MemeDAO) RecountAll(ctx context.Context) (int64, error) {
	res := d.Db.WithContext(ctx).Model(&models.Meme{}).
		Where("likes_count <> (SELECT COUNT(*) FROM likes WHERE likes.meme_id = memes.id)").
		UpdateColumn("likes_count",
			gorm.Expr("(SELECT COUNT(*) FROM likes WHERE likes.meme_id = memes.id)"))
	return res.RowsAffected, res.Error
}

// Query 列表查询条件
type Query struct {
	Scope  Scope
	Since  *time.Time
	TagIDs []uint64
	// Keyword 不区分大小写的子串匹配：标题、描述、标签名
	Keyword   string
	ExcludeID uint64
	Order     string
	Limit     int
	Offset    int
}

const (
	OrderLatest  = "memes.created_at DESC, memes.id DESC"
	OrderPopular = "memes.likes_count DESC, memes.created_at DESC, memes.id DESC"
	OrderID      = "memes.id ASC"
)

func (d *MemeDAO) filtered(ctx context.Context, q *Query) *gorm.DB {
	db := q.Scope.apply(d.Db.WithContext(ctx).Model(&models.Meme{}))
	if q.Since != nil {
		db = db.Where("memes.created_at >= ?", q.Since.UTC())
	}
	if len(q.TagIDs) > 0 {
		db = db.Where("memes.id IN (?)",
			d.Db.Model(&models.MemeTag{}).Select("meme_id").Where("tag_id IN ?", q.TagIDs))
	}
	if q.ExcludeID != 0 {
		db = db.Where("memes.id <> ?", q.ExcludeID)
	}
	if q.Keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Keyword)) + "%"
		tagged := d.Db.Table("meme_tags").
			Select("meme_tags.meme_id").
			Joins("JOIN tags ON tags.id = meme_tags.tag_id").
			Where("LOWER(tags.name) LIKE ? ESCAPE '!'", pattern)
		db = db.Where("(LOWER(memes.title) LIKE ? ESCAPE '!' OR LOWER(memes.description) LIKE ? ESCAPE '!' OR memes.id IN (?))",
			pattern, pattern, tagged)
	}
	return db
}

// List 返回一页数据和符合条件的总数
func (d *MemeDAO) List(ctx context.Context, q *Query) ([]*models.Meme, int64, error) {
	var total int64
	if err := d.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(q.Offset) >= total {
		return []*models.Meme{}, total, nil
	}

	order := q.Order
	if order == "" {
		order = OrderLatest
	}
	var memes []*models.Meme
	err := d.filtered(ctx, q).
		Preload("Tags").
		Order(order).
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&memes).Error
	return memes, total, err
}

// CountWhere 符合条件的数量
func (d *MemeDAO) CountWhere(ctx context.Context, q *Query) (int64, error) {
	var total int64
	err := d.filtered(ctx, q).Count(&total).Error
	return total, err
}

// Nth 按 q.Order 排序后取第 n 条（从 0 开始），越界返回 nil
func (d *MemeDAO) Nth(ctx context.Context, q *Query, n int64) (*models.Meme, error) {
	order := q.Order
	if order == "" {
		order = OrderID
	}
	var memes []*models.Meme
	err := d.filtered(ctx, q).
		Preload("Tags").
		Order(order).
		Limit(1).
		Offset(int(n)).
		Find(&memes).Error
	if err != nil || len(memes) == 0 {
		return nil, err
	}
	return memes[0], nil
}

// TopIDs 按 q.Order 取前 q.Limit 个 id
func (d *MemeDAO) TopIDs(ctx context.Context, q *Query) ([]uint64, error) {
	var ids []uint64
	err := d.filtered(ctx, q).
		Order(q.Order).
		Limit(q.Limit).
		Pluck("memes.id", &ids).Error
	return ids, err
}

// RecommendQuery 用户点过赞的标签下、自己还没点赞的已发布 meme
func (d *MemeDAO) RecommendQuery(ctx context.Context, userID uint64) *gorm.DB {
	likedTags := d.Db.Table("meme_tags").
		Select("DISTINCT meme_tags.tag_id").
		Joins("JOIN likes ON likes.meme_id = meme_tags.meme_id").
		Where("likes.user_id = ?", userID)
	candidates := d.Db.Table("meme_tags").
		Select("meme_tags.meme_id").
		Where("meme_tags.tag_id IN (?)", likedTags)
	liked := d.Db.Table("likes").Select("likes.meme_id").Where("likes.user_id = ?", userID)

	return d.Db.WithContext(ctx).Model(&models.Meme{}).
		Where("memes.is_published = ?", true).
		Where("memes.id IN (?)", candidates).
		Where("memes.id NOT IN (?)", liked)
}

// CountRecommended 推荐候选数量
func (d *MemeDAO) CountRecommended(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := d.RecommendQuery(ctx, userID).Count(&n).Error
	return n, err
}

// NthRecommended 推荐候选按 id 排序后的第 n 条
func (d *MemeDAO) NthRecommended(ctx context.Context, userID uint64, n int64) (*models.Meme, error) {
	var memes []*models.Meme
	err := d.RecommendQuery(ctx, userID).
		Preload("Tags").
		Order(OrderID).
		Limit(1).
		Offset(int(n)).
		Find(&memes).Error
	if err != nil || len(memes) == 0 {
		return nil, err
	}
	return memes[0], nil
}

// PublishedSince 最近发布的 meme，摘要邮件使用
func (d *MemeDAO) PublishedSince(ctx context.Context, since time.Time) ([]*models.Meme, error) {
	var memes []*models.Meme
	err := d.Db.WithContext(ctx).
		Where("is_published = ? AND created_at >= ?", true, since.UTC()).
		Order(OrderID).
		Find(&memes).Error
	return memes, err
}

// escapeLike 转义 LIKE 通配符，配合 ESCAPE '!'
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}
