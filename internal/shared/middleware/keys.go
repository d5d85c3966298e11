package middleware

// contextKey is a type used for context keys to avoid string key collisions
type contextKey string

// Context keys for middleware
const (
	RequestIDKey contextKey = "request_id"
)

// Header constants
const (
	RequestIDHeader = "X-Request-ID"
)
