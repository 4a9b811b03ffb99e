package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewMemeDAO,
	NewTagDAO,
	NewLikeDAO,
	NewFavoriteDAO,
	NewUserDAO,
	NewProfileDAO,
)
