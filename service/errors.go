package service

import (
	"net/http"

	"Memeow/pkg/response"
)

var (
	ErrNotFound     = response.NewError(http.StatusNotFound, "not found")
	ErrUnauthorized = response.NewError(http.StatusUnauthorized, "authentication required")
	ErrForbidden    = response.NewError(http.StatusForbidden, "permission denied")
	ErrValidation   = response.NewError(http.StatusBadRequest, "invalid input")
	ErrConflict     = response.NewError(http.StatusConflict, "already exists")

	ErrMemeNotFound = ErrNotFound.WithMsg("meme not found")
	ErrTagNotFound  = ErrNotFound.WithMsg("tag not found")
)
