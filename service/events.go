package service

import (
	"context"
	"encoding/json"
	"fmt"

	"Memeow/config"
	rmq "Memeow/pkg/rocketmq"
	"Memeow/types"

	"github.com/apache/rocketmq-client-go/v2"
)

// EventPublisher 领域事件在业务事务提交后显式发布
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// EventHandler 事件消费方
type EventHandler interface {
	HandleEvent(ctx context.Context, ev *types.Event) error
}

func newEvent(eventType string, payload any) (*types.Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", eventType, err)
	}
	return &types.Event{Type: eventType, Data: data}, nil
}

// MQPublisher 发到 rocketmq，由 notifier 进程消费
type MQPublisher struct {
	Producer rocketmq.Producer
	Topic    string
}

func (p *MQPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	ev, err := newEvent(eventType, payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return rmq.SendMsg(ctx, p.Producer, p.Topic, eventType, body)
}

// LocalPublisher 未启用 rocketmq 时在进程内同步处理
type LocalPublisher struct {
	Handler EventHandler
}

func (p *LocalPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	ev, err := newEvent(eventType, payload)
	if err != nil {
		return err
	}
	return p.Handler.HandleEvent(ctx, ev)
}

func NewEventPublisher(conf *config.Config, notify *NotifyService) (EventPublisher, func(), error) {
	if !conf.RocketMQ.Enabled {
		return &LocalPublisher{Handler: notify}, func() {}, nil
	}
	p, err := rmq.InitProducer(conf.RocketMQ)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = p.Shutdown() }
	return &MQPublisher{Producer: p, Topic: conf.RocketMQ.Topic}, cleanup, nil
}
