package models

import "time"

// Favorite 收藏记录，对应表 favorites，与点赞相互独立
// 唯一键: user_id + meme_id
type Favorite struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_fav_user_meme,priority:1" json:"user_id"`
	MemeID    uint64    `gorm:"column:meme_id;not null;uniqueIndex:uk_fav_user_meme,priority:2;index" json:"meme_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }
