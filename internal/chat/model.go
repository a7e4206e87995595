package chat

import "time"

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is one chat transcript entry, user-authored or bot-authored.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Message   string    `json:"message"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// SendMessageRequest is the body of POST /api/chat/message.
type SendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// Session tracks per-session activity for housekeeping.
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}
