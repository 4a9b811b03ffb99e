package types

import (
	"Memeow/dao"
	"Memeow/models"
)

type StatsRes struct {
	PopularMemes []*models.Meme   `json:"popular_memes"`
	ActiveUsers  []dao.ActiveUser `json:"active_users"`
	PopularTags  []dao.TagCount   `json:"popular_tags"`
}

type RecountRes struct {
	Updated int64 `json:"updated"`
}
