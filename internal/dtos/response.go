// File: internal/dtos/response.go
package dtos

// ErrorResponse is the body of every non-2xx JSON response.
// ConversationID and Secret are filled when a send failed after its conversation was created,
// so the client can retry on the same conversation.
type ErrorResponse struct {
    Error          string `json:"error"`
    Type           string `json:"type,omitempty"`
    ConversationID string `json:"conversationId,omitempty"`
    Secret         string `json:"secret,omitempty"`
}

// CreateErrorResponse creates a standard error response
func CreateErrorResponse(message, errType string) ErrorResponse {
    return ErrorResponse{
        Error: message,
        Type:  errType,
    }
}
