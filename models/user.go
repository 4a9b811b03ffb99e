package models

import "time"

type User struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"column:username;type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	IsStaff      bool      `gorm:"column:is_staff;not null;default:false" json:"is_staff"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Profile 用户资料，注册时与 User 在同一事务中创建
type Profile struct {
	UserID            uint64    `gorm:"column:user_id;primaryKey;autoIncrement:false" json:"user_id"`
	Avatar            string    `gorm:"column:avatar;type:varchar(255)" json:"avatar"`
	Bio               string    `gorm:"column:bio;type:varchar(500)" json:"bio"`
	EmailSubscription bool      `gorm:"column:email_subscription;not null;default:false" json:"email_subscription"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Profile) TableName() string { return "profiles" }
