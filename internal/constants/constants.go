package constants

// for api
type ContextKey string

const (
	RequestIDKey    ContextKey = "request_id"
	RequestIDHeader            = "X-Request-Id"
)

const (
	// path params
	PathUserID = "userId"
	PathID     = "id"
)
