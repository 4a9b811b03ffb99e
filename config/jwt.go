package config

import "time"

type Jwt struct {
	Secret        string        `json:"secret" yaml:"secret"`
	AccessExpire  time.Duration `json:"access_expire" yaml:"access_expire"`
	RefreshExpire time.Duration `json:"refresh_expire" yaml:"refresh_expire"`
}

func (j *Jwt) applyDefaults() {
	if j.AccessExpire == 0 {
		j.AccessExpire = 2 * time.Hour
	}
	if j.RefreshExpire == 0 {
		j.RefreshExpire = 30 * 24 * time.Hour
	}
}
