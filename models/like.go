package models

import "time"

// Like 点赞记录，对应表 likes
// 唯一键: user_id + meme_id，只插入或删除，不做更新
type Like struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_like_user_meme,priority:1" json:"user_id"`
	MemeID    uint64    `gorm:"column:meme_id;not null;uniqueIndex:uk_like_user_meme,priority:2;index" json:"meme_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Like) TableName() string { return "likes" }
