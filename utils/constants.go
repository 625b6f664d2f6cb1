package utils

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests in seconds (24 hours)
	CORSMaxAge = 86400

	// HSTSMaxAge is one year in seconds
	HSTSMaxAge = 31536000
)
