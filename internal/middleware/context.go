package middleware

// Context keys used to share per-request values with handlers.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyLocale    = "locale"
	ContextKeyUser      = "user"
	ContextKeyToken     = "session_token"
)
