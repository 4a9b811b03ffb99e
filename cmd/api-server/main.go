package main

import (
	"fmt"
	"os"

	"Memeow/config"
	"Memeow/pkg/log"
	"Memeow/pkg/rocketmq"
	"Memeow/pkg/server"
	"Memeow/pkg/snowflake"
	"Memeow/service"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Jobs 命令行任务用到的服务，不启动 http
type Jobs struct {
	Config     *config.Config
	Engagement *service.EngagementService
	Notify     *service.NotifyService
}

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	path := fmt.Sprintf("configs/config.%s.yaml", env)
	cfg := config.New(path)
	log.SetDebug(cfg.Debug())
	if err := snowflake.SetNode(cfg.App.NodeID); err != nil {
		log.L.Fatal("snowflake node", zap.Error(err))
	}

	cliApp := &cli.App{
		Name:  "api-server",
		Usage: "memeow api and maintenance jobs",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start http server",
				Action: func(ctx *cli.Context) error {
					app, cleanup, err := InitServer(cfg)
					if err != nil {
						return err
					}
					defer cleanup()
					return server.Run(ctx, app)
				},
			},
			{
				Name:  "recount",
				Usage: "rebuild likes_count from the likes table",
				Flags: []cli.Flag{
					&cli.Uint64Flag{Name: "meme-id", Usage: "only recount one meme"},
				},
				Action: func(ctx *cli.Context) error {
					jobs, cleanup, err := InitJobs(cfg)
					if err != nil {
						return err
					}
					defer cleanup()

					if id := ctx.Uint64("meme-id"); id != 0 {
						n, err := jobs.Engagement.Recount(ctx.Context, id)
						if err != nil {
							return err
						}
						log.L.Info("recount done", zap.Uint64("meme_id", id), zap.Int64("likes_count", n))
						return nil
					}
					_, err = jobs.Engagement.RecountAll(ctx.Context)
					return err
				},
			},
			{
				Name:  "digest",
				Usage: "mail the weekly digest to subscribed users",
				Action: func(ctx *cli.Context) error {
					jobs, cleanup, err := InitJobs(cfg)
					if err != nil {
						return err
					}
					defer cleanup()
					_, err = jobs.Notify.Digest(ctx.Context)
					return err
				},
			},
			{
				Name:  "notifier",
				Usage: "consume user events and send notification mails",
				Action: func(ctx *cli.Context) error {
					if !cfg.RocketMQ.Enabled {
						return cli.Exit("rocketmq is disabled, events are handled in-process by serve", 1)
					}
					jobs, cleanup, err := InitJobs(cfg)
					if err != nil {
						return err
					}
					defer cleanup()

					consumer, err := rocketmq.InitConsumer(cfg.RocketMQ)
					if err != nil {
						return err
					}
					runCtx, stop := signalContext(ctx.Context)
					defer stop()
					if err := jobs.Notify.Setup(runCtx, consumer); err != nil {
						return err
					}
					<-runCtx.Done()
					return nil
				},
			},
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		log.L.Fatal("command failed", zap.Error(err))
	}
}
