package config

import (
	"fmt"
	"time"
)

// Ranking 排行、每日推荐相关配置
type Ranking struct {
	PageSize      int           `json:"page_size" yaml:"page_size"`
	MaxLimit      int           `json:"max_limit" yaml:"max_limit"`
	SimilarLimit  int           `json:"similar_limit" yaml:"similar_limit"`
	DailyPoolSize int           `json:"daily_pool_size" yaml:"daily_pool_size"`
	DailyWindow   time.Duration `json:"daily_window" yaml:"daily_window"`
	PickTTL       time.Duration `json:"pick_ttl" yaml:"pick_ttl"`
	Timezone      string        `json:"timezone" yaml:"timezone"`

	location *time.Location
}

func (r *Ranking) applyDefaults() {
	if r.PageSize <= 0 {
		r.PageSize = 24
	}
	if r.MaxLimit <= 0 {
		r.MaxLimit = 100
	}
	if r.SimilarLimit <= 0 {
		r.SimilarLimit = 6
	}
	if r.DailyPoolSize <= 0 {
		r.DailyPoolSize = 10
	}
	if r.DailyWindow <= 0 {
		r.DailyWindow = 7 * 24 * time.Hour
	}
	if r.PickTTL <= 0 {
		r.PickTTL = 24 * time.Hour
	}
	if r.Timezone == "" {
		r.Timezone = "UTC"
	}
}

func (r *Ranking) validate() error {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return fmt.Errorf("ranking.timezone: %w", err)
	}
	r.location = loc
	return nil
}

// Location 日期种子使用的时区
func (r *Ranking) Location() *time.Location {
	if r.location == nil {
		return time.UTC
	}
	return r.location
}
