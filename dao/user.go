package dao

import (
	"context"

	"Memeow/models"

	"gorm.io/gorm"
)

type UserDAO struct {
	Repo[models.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{Repo: NewRepo[models.User](db)}
}

func (d *UserDAO) WithTx(tx *gorm.DB) *UserDAO {
	return NewUserDAO(tx)
}

// FindByLogin 用户名或邮箱登录，不存在返回 nil, nil
func (d *UserDAO) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return d.FindByWhere(ctx, "username = ? OR email = ?", login, login)
}

// ActiveUser 活跃用户统计
type ActiveUser struct {
	ID        uint64 `gorm:"column:id" json:"id"`
	Username  string `gorm:"column:username" json:"username"`
	MemeCount int64  `gorm:"column:meme_count" json:"meme_count"`
	LikeCount int64  `gorm:"column:like_count" json:"like_count"`
}

// Active 按发布数量倒序
func (d *UserDAO) Active(ctx context.Context, limit int) ([]ActiveUser, error) {
	rows := []ActiveUser{}
	err := d.Db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, " +
			"(SELECT COUNT(*) FROM memes WHERE memes.author_id = users.id) AS meme_count, " +
			"(SELECT COUNT(*) FROM likes WHERE likes.user_id = users.id) AS like_count").
		Order("meme_count DESC, users.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// Subscribers 订阅了邮件的用户
func (d *UserDAO) Subscribers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := d.Db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN profiles ON profiles.user_id = users.id").
		Where("profiles.email_subscription = ?", true).
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

type ProfileDAO struct {
	Repo[models.Profile]
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{Repo: NewRepo[models.Profile](db)}
}

func (d *ProfileDAO) WithTx(tx *gorm.DB) *ProfileDAO {
	return NewProfileDAO(tx)
}

func (d *ProfileDAO) FindByUserID(ctx context.Context, userID uint64) (*models.Profile, error) {
	return d.FindByWhere(ctx, "user_id = ?", userID)
}

// Update 只更新传入的字段
func (d *ProfileDAO) Update(ctx context.Context, userID uint64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Updates(fields).Error
}
