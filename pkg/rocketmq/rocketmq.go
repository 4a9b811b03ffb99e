package rocketmq

import (
	"context"
	"fmt"

	"Memeow/config"
	"Memeow/pkg/log"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/apache/rocketmq-client-go/v2/rlog"
	"go.uber.org/zap"
)

func init() {
	rlog.SetLogLevel("error")
}

// InitProducer 创建并启动生产者
func InitProducer(cfg *config.RocketMQConfig) (rocketmq.Producer, error) {
	p, err := rocketmq.NewProducer(
		producer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		producer.WithGroupName(cfg.Producer.Group),
		producer.WithRetry(cfg.Producer.Retry),
	)
	if err != nil {
		return nil, fmt.Errorf("new producer: %w", err)
	}
	if err = p.Start(); err != nil {
		return nil, fmt.Errorf("start producer: %w", err)
	}
	log.L.Info("init producer success", zap.Strings("nameserver", cfg.NameServer))
	return p, nil
}

// InitConsumer 创建推模式消费者，Subscribe 后由调用方 Start
func InitConsumer(cfg *config.RocketMQConfig) (rocketmq.PushConsumer, error) {
	c, err := rocketmq.NewPushConsumer(
		consumer.WithNsResolver(primitive.NewPassthroughResolver(cfg.NameServer)),
		consumer.WithGroupName(cfg.Consumer.Group),
		consumer.WithConsumeFromWhere(consumer.ConsumeFromLastOffset),
	)
	if err != nil {
		return nil, fmt.Errorf("new consumer: %w", err)
	}
	return c, nil
}

// SendMsg 同步发送
func SendMsg(ctx context.Context, p rocketmq.Producer, topic, tag string, body []byte) error {
	msg := primitive.NewMessage(topic, body)
	if tag != "" {
		msg.WithTag(tag)
	}
	res, err := p.SendSync(ctx, msg)
	if err != nil {
		return err
	}
	log.L.Info("send message success", zap.String("topic", topic), zap.String("msg_id", res.MsgID))
	return nil
}
