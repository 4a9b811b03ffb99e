package service

import (
	"Memeow/dao"
	"Memeow/models"
)

// Viewer 当前请求的身份，UserID 为 0 表示匿名
type Viewer struct {
	UserID uint64
	Staff  bool
}

var Anonymous = Viewer{}

func (v Viewer) Authenticated() bool {
	return v.UserID != 0
}

func (v Viewer) scope() dao.Scope {
	return dao.Scope{ViewerID: v.UserID, Staff: v.Staff}
}

// CanSee 未发布的只有作者和 staff 可见
func (v Viewer) CanSee(m *models.Meme) bool {
	if m == nil {
		return false
	}
	return m.IsPublished || v.Staff || (v.Authenticated() && m.AuthorID == v.UserID)
}

// CanEdit 作者或 staff
func (v Viewer) CanEdit(m *models.Meme) bool {
	return v.Staff || (v.Authenticated() && m.AuthorID == v.UserID)
}
