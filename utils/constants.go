package utils

import (
	"time"
)

// Token time constants
const (
	// AccessTokenTTL is the absolute lifetime of an access token (1 hour)
	AccessTokenTTL = time.Hour

	// AccessTokenTTLSeconds is AccessTokenTTL in seconds
	AccessTokenTTLSeconds = 3600

	// TokenTypeBearer is the scheme returned alongside issued tokens
	TokenTypeBearer = "Bearer"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Request timeouts
const (
	// DefaultRequestTimeout bounds every handler's call into the business layer
	DefaultRequestTimeout = 30 * time.Second
)
