package types

import "Memeow/models"

// LikeResult 点赞切换结果
type LikeResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// FavoriteResult 收藏切换结果
type FavoriteResult struct {
	Favorited bool `json:"favorited"`
}

type MemeItem struct {
	*models.Meme
	IsLiked    bool `json:"is_liked"`
	IsFavorite bool `json:"is_favorite"`
}

// MemePage 列表分页，页码越界时 Items 为空
type MemePage struct {
	Items    []*models.Meme `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page,omitempty"`
	PageSize int            `json:"page_size,omitempty"`
}

type MemeDetail struct {
	Meme           *models.Meme   `json:"meme"`
	Similar        []*models.Meme `json:"similar"`
	IsLiked        bool           `json:"is_liked"`
	IsFavorite     bool           `json:"is_favorite"`
	FavoritesCount int64          `json:"favorites_count"`
}

type CreateMemeReq struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Image       string   `json:"image" binding:"max=255"`
	TagIDs      []uint64 `json:"tag_ids"`
	IsPublished *bool    `json:"is_published"`
}

// UpdateMemeReq 只更新传了的字段，TagIDs 非 nil 时整体替换
type UpdateMemeReq struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	TagIDs      *[]uint64 `json:"tag_ids"`
	IsPublished *bool     `json:"is_published"`
}

type ListReq struct {
	Page      int `form:"page"`
	Limit     int `form:"limit"`
	SinceDays int `form:"since_days" binding:"omitempty,min=0,max=3650"`
}

type SearchReq struct {
	Q    string `form:"q"`
	Page int    `form:"page"`
}

// MemeItemPage 带当前用户点赞/收藏标记的分页
type MemeItemPage struct {
	Items    []MemeItem `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page,omitempty"`
	PageSize int              `json:"page_size,omitempty"`
}
