package model

import "time"

// InboundMessage is one new chat message from the source channel. Sender is
// only used for logging.
type InboundMessage struct {
	ID         string    `json:"id"`
	ChatID     string    `json:"chat_id"`
	Sender     string    `json:"sender"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"received_at"`
}
