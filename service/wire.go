package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(EngagementService), "*"),
	wire.Bind(new(IEngagementService), new(*EngagementService)),

	wire.Struct(new(RankingService), "*"),
	wire.Bind(new(IRankingService), new(*RankingService)),

	wire.Struct(new(DailyPickService), "*"),
	wire.Bind(new(IDailyPickService), new(*DailyPickService)),

	wire.Struct(new(RecommendService), "*"),
	wire.Bind(new(IRecommendService), new(*RecommendService)),

	wire.Struct(new(MemeService), "*"),
	wire.Bind(new(IMemeService), new(*MemeService)),

	wire.Struct(new(TagService), "*"),
	wire.Bind(new(ITagService), new(*TagService)),

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(NotifyService), "*"),
	wire.Bind(new(INotifyService), new(*NotifyService)),

	NewEventPublisher,
)
