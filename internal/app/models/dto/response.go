package dto

// FlashMessage is one drained flash as rendered to the client.
type FlashMessage struct {
	Text     string `json:"text"`
	Severity string `json:"severity" example:"success"`
}

// APIResponse is the standard envelope for successful JSON responses.
type APIResponse struct {
	Data     interface{}    `json:"data,omitempty"`
	Messages []FlashMessage `json:"messages,omitempty"`
	Error    *ErrorDetail   `json:"error,omitempty"`
}
