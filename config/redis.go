package config

// Redis Redis配置信息
type Redis struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Database int    `json:"database" yaml:"database"`
}

const (
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

// Cache 缓存驱动，memory 只适用于单实例部署
type Cache struct {
	Driver string `json:"driver" yaml:"driver"`
}
