package server

import (
	"Memeow/handler"
)

type Handlers struct {
	Meme       *handler.Meme
	Engagement *handler.Engagement
	Feed       *handler.Feed
	Tag        *handler.Tag
	User       *handler.User
	Stats      *handler.Stats
}
