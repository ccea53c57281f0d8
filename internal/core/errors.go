package core

// Error codes surfaced over the wire for malformed client input. Store
// failures are logged server-side and never reported to the client.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)
