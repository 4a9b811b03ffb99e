package config

type RocketMQConfig struct {
	Enabled    bool     `yaml:"enabled"`
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`

	Consumer Consumer `yaml:"consumer"`

	// Topic 用户事件 topic
	Topic string `yaml:"topic"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
}

type Consumer struct {
	Group string `yaml:"group"`
}

func (r *RocketMQConfig) applyDefaults() {
	if r.Topic == "" {
		r.Topic = "memeow_user_events"
	}
	if r.Producer.Group == "" {
		r.Producer.Group = "memeow_producer"
	}
	if r.Producer.Retry == 0 {
		r.Producer.Retry = 2
	}
	if r.Consumer.Group == "" {
		r.Consumer.Group = "memeow_notifier"
	}
}
