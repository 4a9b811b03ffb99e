package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"Memeow/config"
	"Memeow/dao"
	"Memeow/models"
	"Memeow/pkg/clock"
	"Memeow/pkg/log"
	"Memeow/pkg/mail"
	"Memeow/types"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

const (
	digestSize   = 5
	digestWindow = 7 * 24 * time.Hour
)

var _ EventHandler = (*NotifyService)(nil)

type INotifyService interface {
	HandleEvent(ctx context.Context, ev *types.Event) error
	Welcome(ctx context.Context, ev *types.UserRegisteredEvent) error
	Digest(ctx context.Context) (int, error)
	Setup(ctx context.Context, c rocketmq.PushConsumer) error
}

// NotifyService 欢迎邮件和每周摘要
type NotifyService struct {
	Config  *config.Config
	Clock   clock.Clock
	Mailer  mail.Mailer
	UserDAO *dao.UserDAO
	MemeDAO *dao.MemeDAO
}

func (s *NotifyService) HandleEvent(ctx context.Context, ev *types.Event) error {
	switch ev.Type {
	case types.EventUserRegistered:
		var data types.UserRegisteredEvent
		if err := json.Unmarshal(ev.Data, &data); err != nil {
			return fmt.Errorf("unmarshal %s: %w", ev.Type, err)
		}
		return s.Welcome(ctx, &data)
	default:
		log.L.Warn("unknown event", zap.String("type", ev.Type))
		return nil
	}
}

func (s *NotifyService) Welcome(ctx context.Context, ev *types.UserRegisteredEvent) error {
	if ev.Email == "" {
		return nil
	}
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Memeow! Start browsing at %s\n", ev.Username, s.Config.App.SiteURL)
	if err := s.Mailer.Send(ctx, ev.Email, "Welcome to Memeow", body); err != nil {
		return fmt.Errorf("welcome mail to user %d: %w", ev.UserID, err)
	}
	return nil
}

// Setup 订阅用户事件，ctx 结束时关闭消费者
func (s *NotifyService) Setup(ctx context.Context, c rocketmq.PushConsumer) error {
	topic := s.Config.RocketMQ.Topic
	if err := c.Subscribe(topic, consumer.MessageSelector{}, s.handleMessage); err != nil {
		return fmt.Errorf("subscribe topic %s: %w", topic, err)
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	log.L.Info("[MQ] notifier consumer started", zap.String("topic", topic))

	go func() {
		<-ctx.Done()
		log.L.Info("[MQ] notifier consumer stopping")
		_ = c.Shutdown()
	}()
	return nil
}

func (s *NotifyService) handleMessage(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	for _, msg := range msgs {
		var ev types.Event
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			// 格式错误的消息重试也没用，直接丢弃
			log.L.Error("unmarshal event", zap.String("msg_id", msg.MsgId), zap.Error(err))
			continue
		}
		if err := s.HandleEvent(ctx, &ev); err != nil {
			log.L.Error("handle event", zap.String("type", ev.Type), zap.Error(err))
			return consumer.ConsumeRetryLater, err
		}
	}
	return consumer.ConsumeSuccess, nil
}

// Digest 给订阅用户发送最近 7 天随机 5 个 meme，返回成功发送的数量
func (s *NotifyService) Digest(ctx context.Context) (int, error) {
	since := s.Clock.Now().Add(-digestWindow)
	memes, err := s.MemeDAO.PublishedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("digest memes: %w", err)
	}
	if len(memes) == 0 {
		log.L.Info("digest skipped, nothing new")
		return 0, nil
	}
	rand.Shuffle(len(memes), func(i, j int) { memes[i], memes[j] = memes[j], memes[i] })
	if len(memes) > digestSize {
		memes = memes[:digestSize]
	}

	users, err := s.UserDAO.Subscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("digest subscribers: %w", err)
	}

	body := s.digestBody(memes)
	var sent atomic.Int64
	p := pool.New().WithMaxGoroutines(8).WithErrors().WithContext(ctx)
	for _, u := range users {
		p.Go(func(ctx context.Context) error {
			if err := s.Mailer.Send(ctx, u.Email, "Your weekly Memeow digest", body); err != nil {
				log.L.Warn("digest mail", zap.Uint64("user_id", u.ID), zap.Error(err))
				return err
			}
			sent.Add(1)
			return nil
		})
	}
	err = p.Wait()
	log.L.Info("digest sent", zap.Int64("sent", sent.Load()), zap.Int("subscribers", len(users)))
	return int(sent.Load()), err
}

func (s *NotifyService) digestBody(memes []*models.Meme) string {
	var b strings.Builder
	b.WriteString("This week's memes:\n\n")
	for _, m := range memes {
		fmt.Fprintf(&b, "- %s: %s/memes/%d\n", m.Title, strings.TrimRight(s.Config.App.SiteURL, "/"), m.ID)
	}
	return b.String()
}
