package dao

import (
	"context"
	"errors"

	"Memeow/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type relationRow interface {
	models.Like | models.Favorite
}

// Relation 用户-meme 关系表（点赞、收藏）的公共操作
// 唯一键 (user_id, meme_id)，行只插入或删除
type Relation[T relationRow] struct {
	Repo[T]
	newRow func(userID, memeID uint64) *T
}

// Remove 删除关系，返回是否真的删掉了一行
func (r *Relation[T]) Remove(ctx context.Context, userID, memeID uint64) (bool, error) {
	res := r.Db.WithContext(ctx).
		Where("user_id = ? AND meme_id = ?", userID, memeID).
		Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Add 插入关系，唯一键冲突返回 ErrConflictRetryable
func (r *Relation[T]) Add(ctx context.Context, userID, memeID uint64) error {
	res := r.Db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(r.newRow(userID, memeID))
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return ErrConflictRetryable
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflictRetryable
	}
	return nil
}

func (r *Relation[T]) Exists(ctx context.Context, userID, memeID uint64) (bool, error) {
	return r.IsExist(ctx, "user_id = ? AND meme_id = ?", userID, memeID)
}

func (r *Relation[T]) CountByMeme(ctx context.Context, memeID uint64) (int64, error) {
	return r.Count(ctx, "meme_id = ?", memeID)
}

// FilterMemeIDs 返回 memeIDs 中该用户有关系的那部分
func (r *Relation[T]) FilterMemeIDs(ctx context.Context, userID uint64, memeIDs []uint64) (map[uint64]bool, error) {
	set := make(map[uint64]bool, len(memeIDs))
	if userID == 0 || len(memeIDs) == 0 {
		return set, nil
	}
	var hit []uint64
	err := r.Model(ctx).
		Where("user_id = ? AND meme_id IN ?", userID, memeIDs).
		Pluck("meme_id", &hit).Error
	if err != nil {
		return nil, err
	}
	for _, id := range hit {
		set[id] = true
	}
	return set, nil
}

// ListMemeIDsByUser 按关系创建时间倒序分页
func (r *Relation[T]) ListMemeIDsByUser(ctx context.Context, userID uint64, limit, offset int) ([]uint64, int64, error) {
	var total int64
	if err := r.Model(ctx).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var ids []uint64
	err := r.Model(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Pluck("meme_id", &ids).Error
	return ids, total, err
}

type LikeDAO struct {
	Relation[models.Like]
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{Relation: Relation[models.Like]{
		Repo: NewRepo[models.Like](db),
		newRow: func(userID, memeID uint64) *models.Like {
			return &models.Like{UserID: userID, MemeID: memeID}
		},
	}}
}

func (d *LikeDAO) WithTx(tx *gorm.DB) *LikeDAO {
	return NewLikeDAO(tx)
}

type FavoriteDAO struct {
	Relation[models.Favorite]
}

func NewFavoriteDAO(db *gorm.DB) *FavoriteDAO {
	return &FavoriteDAO{Relation: Relation[models.Favorite]{
		Repo: NewRepo[models.Favorite](db),
		newRow: func(userID, memeID uint64) *models.Favorite {
			return &models.Favorite{UserID: userID, MemeID: memeID}
		},
	}}
}

func (d *FavoriteDAO) WithTx(tx *gorm.DB) *FavoriteDAO {
	return NewFavoriteDAO(tx)
}
