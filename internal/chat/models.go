// internal/chat/models.go
package chat

type Request struct {
	Message string `json:"message"`
}

type Response struct {
	Reply string `json:"reply"`
}

// PreflightResponse answers OPTIONS on the chat routes.
type PreflightResponse struct {
	Status string `json:"status"`
}
