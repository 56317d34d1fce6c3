package constants

import "time"

const (
	PasswordMinLength = 6
	PasswordMaxLength = 72
	AuthTokenSize     = 32
	BcryptCost        = 12

	ItemNameMaxLength        = 255
	ItemDescriptionMaxLength = 4000

	CityAutocompleteLimit         = 10
	CityAutocompleteMaxQueryChars = 100

	DefaultMaxRequestSize = 1 << 20

	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 15 * time.Second
	ServerWriteTimeout      = 15 * time.Second
	ServerIdleTimeout       = 60 * time.Second

	DBPoolMetricsInterval = 30 * time.Second

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitLoginRequestsPerSecond   = 1.0
	RateLimitLoginBurst               = 5
	RateLimitSignupRequestsPerSecond  = 0.5
	RateLimitSignupBurst              = 3
	RateLimitGeneralRequestsPerSecond = 20.0
	RateLimitGeneralBurst             = 40
)

type ContextKey string

const TraceIDKey ContextKey = "trace_id"
