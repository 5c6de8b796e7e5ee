package service

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrDeactivationNotFound   = errors.New("deactivated user not found")
	ErrHistoryNotFound        = errors.New("user deactivation history not found")
	ErrSelfTarget             = errors.New("cannot target own account")
	ErrNotDeactivated         = errors.New("user is not currently deactivated")
	ErrAccountDeactivated     = errors.New("account is deactivated")
	ErrUnknownField           = errors.New("fields not found")
)
