package constants

import (
	"math"
	"time"
)

// Context keys
const (
	ContextKeyUserID      = "user_id"
	ContextKeyCurrentUser = "current_user"
	ContextKeyTaskID      = "task_id"
	ContextKeyPathUserID  = "path_user_id"
	ContextKeyRequestID   = "request_id"
)

// Session
const (
	SessionCookieName     = "task_session"
	SessionKeyAccessToken = "access_token"
	SessionMaxAge         = 86400 * 7
)

// Pagination
const (
	DefaultSkip         = 0
	DefaultPageSize     = 10
	MinPageSize         = 1
	MaxPageSize         = 100
	DefaultUserPageSize = 100
	MaxUserPageSize     = 100
	MaxSkip             = math.MaxInt32
)

// Credentials
const (
	MinPasswordLength = 8
	// bcrypt only hashes the first 72 bytes and rejects anything longer.
	MaxPasswordLength = 72
	MaxFullNameLength = 100
)

// Tokens
const (
	TokenType             = "bearer"
	DefaultAccessTokenTTL = 30 * time.Minute
)

const RequestIDHeader = "X-Request-ID"
