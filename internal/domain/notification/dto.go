package notification

// EventExpiryDigest is the SSE event name carrying a Feed.
const EventExpiryDigest = "expiry_digest"

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
