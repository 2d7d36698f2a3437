package listener

import (
	"strings"
	"time"

	"signalexecutor/src/connectors"
	"signalexecutor/src/model"
)

// matchesSource reports whether chat is the configured source. source may be
// a numeric chat id or an @username; an empty source accepts every chat.
func matchesSource(source string, chatID string, chatUsername string) bool {
	source = strings.TrimSpace(source)
	if source == "" {
		return true
	}
	if source == chatID {
		return true
	}
	if chatUsername != "" && strings.EqualFold(strings.TrimPrefix(source, "@"), chatUsername) {
		return true
	}
	return false
}

// inboundFromUpdate converts a Bot API update into an InboundMessage. Updates
// without text, or from another chat, are skipped.
func inboundFromUpdate(source string, upd connectors.TelegramUpdate) (model.InboundMessage, bool) {
	post := upd.Post()
	if post == nil || post.Body() == "" {
		return model.InboundMessage{}, false
	}

	chatID := connectors.ChatIDString(post.Chat.ID)
	if !matchesSource(source, chatID, post.Chat.Username) {
		return model.InboundMessage{}, false
	}

	received := time.Now().UTC()
	if post.Date > 0 {
		received = time.Unix(post.Date, 0).UTC()
	}

	return model.InboundMessage{
		ID:         connectors.ChatIDString(post.MessageID),
		ChatID:     chatID,
		Sender:     post.SenderName(),
		Text:       post.Body(),
		ReceivedAt: received,
	}, true
}
