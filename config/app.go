package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
	// NodeID snowflake 节点号，多实例部署时各不相同
	NodeID int64 `json:"node_id" yaml:"node_id"`
	// SiteURL 邮件中拼接链接使用
	SiteURL string `json:"site_url" yaml:"site_url"`
}
