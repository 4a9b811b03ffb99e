package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrConflictRetryable 唯一键竞争失败：并发请求已经插入了同一条关系记录
// 只在 dao/service 内部流转，不会返回给调用方
var ErrConflictRetryable = errors.New("dao: unique constraint race")

// Repo 通用表操作
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Db.WithContext(ctx).Model(new(T))
}

// Transaction 事务内通过 WithTx 取得绑定 tx 的 dao
func (r *Repo[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.Db.WithContext(ctx).Transaction(fn)
}

// FindById 不存在返回 nil, nil
func (r *Repo[T]) FindById(ctx context.Context, id any) (*T, error) {
	var item T
	err := r.Db.WithContext(ctx).Where("id = ?", id).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByWhere 不存在返回 nil, nil
func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	err := r.Db.WithContext(ctx).Where(where, args...).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var n int64
	err := r.Model(ctx).Where(where, args...).Limit(1).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repo[T]) Count(ctx context.Context, where string, args ...any) (int64, error) {
	var n int64
	err := r.Model(ctx).Where(where, args...).Count(&n).Error
	return n, err
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Db.WithContext(ctx).Create(item).Error
}
