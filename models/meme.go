package models

import "time"

// Meme 对应表 memes
// likes_count 是 likes 表的冗余计数，以 likes 表为准，可通过 recount 修复
type Meme struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Image       string    `gorm:"column:image;type:varchar(255)" json:"image"`
	AuthorID    uint64    `gorm:"column:author_id;not null;index" json:"author_id"`
	Tags        []Tag     `gorm:"many2many:meme_tags" json:"tags,omitempty"`
	ViewsCount  int64     `gorm:"column:views_count;not null;default:0" json:"views_count"`
	LikesCount  int64     `gorm:"column:likes_count;not null;default:0;index:idx_memes_likes" json:"likes_count"`
	IsPublished bool      `gorm:"column:is_published;not null" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at;index:idx_memes_created" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Meme) TableName() string { return "memes" }

// MemeTag 对应表 meme_tags
type MemeTag struct {
	MemeID uint64 `gorm:"column:meme_id;primaryKey"`
	TagID  uint64 `gorm:"column:tag_id;primaryKey;index"`
}

func (MemeTag) TableName() string { return "meme_tags" }
