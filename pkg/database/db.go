package database

import (
	"time"

	"Memeow/config"
	"Memeow/models"
	"Memeow/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Options 统一的 gorm 配置：UTC 时间、翻译唯一键冲突错误、zap 日志
func Options(debug bool) *gorm.Config {
	return &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
		Logger:         NewLogger(log.L, debug),
	}
}

// NewDB 初始化数据库连接
func NewDB(conf *config.Config) *gorm.DB {
	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), Options(conf.Debug()))
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.L.Fatal("failed to get sql.DB", zap.Error(err))
	}
	if conf.MySQL.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MySQL.MaxOpenConns)
	}
	if conf.MySQL.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MySQL.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if conf.MySQL.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			log.L.Fatal("auto migrate", zap.Error(err))
		}
	}
	log.L.Info("connect database success")
	return db
}
