package dto

// MessageResponse is the plain response shape of the public API: every
// success and failure carries a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewMessageResponse creates a message response
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
