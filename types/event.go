package types

import "encoding/json"

const EventUserRegistered = "user.registered"

// Event 消息队列中的事件封装
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
