package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrEmailTaken          = errors.New("email is already in use")
	ErrInvalidRefreshToken = errors.New("refresh token is not valid")
	ErrExpiredRefreshToken = errors.New("refresh token has expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrInternal            = errors.New("internal server error")
)
