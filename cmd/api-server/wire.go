//go:build wireinject
// +build wireinject

package main

import (
	"Memeow/config"
	"Memeow/dao"
	"Memeow/dao/cache"
	"Memeow/handler"
	"Memeow/pkg/clock"
	"Memeow/pkg/database"
	"Memeow/pkg/mail"
	"Memeow/pkg/server"
	"Memeow/service"

	"github.com/google/wire"
)

var baseSet = wire.NewSet(
	database.NewDB,
	clock.New,
	mail.NewMailer,
	cache.ProviderSet,
	dao.ProviderSet,
	service.ProviderSet,
)

func InitServer(cfg *config.Config) (*server.AppProvider, func(), error) {
	wire.Build(
		baseSet,
		server.NewGinEngine,

		wire.Struct(new(handler.Meme), "*"),
		wire.Struct(new(handler.Engagement), "*"),
		wire.Struct(new(handler.Feed), "*"),
		wire.Struct(new(handler.Tag), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Stats), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil, nil
}

func InitJobs(cfg *config.Config) (*Jobs, func(), error) {
	wire.Build(
		database.NewDB,
		clock.New,
		mail.NewMailer,
		dao.ProviderSet,
		wire.Struct(new(service.EngagementService), "*"),
		wire.Struct(new(service.NotifyService), "*"),
		wire.Struct(new(Jobs), "*"),
	)
	return nil, nil, nil
}
