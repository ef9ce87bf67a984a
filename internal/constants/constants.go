package constants

// ContextKeyUserID is the key under which the authenticated user ID is
// stored in both the session and the gin context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "fsauth_session"

// SessionMaxAgeSeconds is the session lifetime (7 days).
const SessionMaxAgeSeconds = 86400 * 7

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Pagination limits for list endpoints.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
