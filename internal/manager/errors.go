package manager

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBanned      = errors.New("account is banned")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmptyUsername      = errors.New("username must not be empty")
	ErrEmptyEmail         = errors.New("email must not be empty")
	ErrSubdomainTaken     = errors.New("subdomain already taken")
	ErrAccountExists      = errors.New("an account with this username or email already exists")
	ErrSystemSection      = errors.New("system sections cannot be deleted")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrUnknownTheme       = errors.New("unknown theme")
)
