package models

import (
	"strings"
	"unicode"
)

// Tag 对应表 tags，name 与 slug 均全局唯一
type Tag struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"column:name;type:varchar(50);not null;uniqueIndex" json:"name"`
	Slug string `gorm:"column:slug;type:varchar(60);not null;uniqueIndex" json:"slug"`
}

func (Tag) TableName() string { return "tags" }

// Slugify 生成 url 标识：小写，字母数字以外的字符折叠成单个 "-"
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '_' || r == '-' || unicode.IsSpace(r):
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
