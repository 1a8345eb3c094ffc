package http

type (
	// UpdateRequest struct - HTTP request DTO for one webhook update
	UpdateRequest struct {
		UpdateID int64           `json:"update_id" validate:"required"`
		Message  *MessageRequest `json:"message" validate:"omitempty"`
	}

	// MessageRequest struct - Inbound message payload
	MessageRequest struct {
		MessageID int64         `json:"message_id"`
		From      *FromRequest  `json:"from" validate:"required"`
		Chat      *ChatRequest  `json:"chat" validate:"required"`
		Text      string        `json:"text" validate:"omitempty,max=4096"`
		Video     *VideoRequest `json:"video" validate:"omitempty"`
	}

	// FromRequest struct - Sending user
	FromRequest struct {
		ID       int64  `json:"id" validate:"required"`
		Username string `json:"username"`
	}

	// ChatRequest struct - Target chat
	ChatRequest struct {
		ID int64 `json:"id" validate:"required"`
	}

	// VideoRequest struct - Video attachment reference
	VideoRequest struct {
		FileID   string `json:"file_id" validate:"required"`
		FileName string `json:"file_name"`
	}
)
