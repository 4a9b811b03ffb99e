package models

import "gorm.io/gorm"

// All 需要迁移的表
func All() []any {
	return []any{
		&User{},
		&Profile{},
		&Tag{},
		&Meme{},
		&MemeTag{},
		&Like{},
		&Favorite{},
	}
}

// Migrate 注册自定义关联表后建表
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Meme{}, "Tags", &MemeTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(All()...)
}
