package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App      *App            `json:"app" yaml:"app"`
	Server   *Server         `json:"server" yaml:"server"`
	MySQL    *MySQL          `json:"mysql" yaml:"mysql"`
	Redis    *Redis          `json:"redis" yaml:"redis"`
	Cache    *Cache          `json:"cache" yaml:"cache"`
	Jwt      *Jwt            `json:"jwt" yaml:"jwt"`
	Ranking  *Ranking        `json:"ranking" yaml:"ranking"`
	RocketMQ *RocketMQConfig `json:"rocketmq" yaml:"rocketmq"`
	Mail     *Mail           `json:"mail" yaml:"mail"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", filename, err))
	}
	return conf
}

// Parse 解析 yaml 并补齐缺省值
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.applyDefaults()
	if err := conf.Ranking.validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Default 全部使用缺省值的配置，测试与本地开发使用
func Default() *Config {
	conf := &Config{}
	conf.applyDefaults()
	return conf
}

func (c *Config) applyDefaults() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8080
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Cache == nil {
		c.Cache = &Cache{}
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = CacheDriverRedis
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	c.Jwt.applyDefaults()
	if c.Ranking == nil {
		c.Ranking = &Ranking{}
	}
	c.Ranking.applyDefaults()
	if c.RocketMQ == nil {
		c.RocketMQ = &RocketMQConfig{}
	}
	c.RocketMQ.applyDefaults()
	if c.Mail == nil {
		c.Mail = &Mail{}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
