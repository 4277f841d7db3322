package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrIssueNotFound   = goerr.New("issue not found")
	ErrUserNotFound    = goerr.New("user not found")
	ErrSessionNotFound = goerr.New("session not found")
	ErrEmailTaken      = goerr.New("email already registered")
)
