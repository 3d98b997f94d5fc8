package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends notifications as bot messages to one chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram authorizes the bot token against the Telegram API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	return NewTelegramWithEndpoint(token, chatID, tgbotapi.APIEndpoint)
}

// NewTelegramWithEndpoint is NewTelegram against another API endpoint,
// a format string taking the token and the method name.
func NewTelegramWithEndpoint(token string, chatID int64, endpoint string) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram token and chat id are required")
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %v", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// Notify sends title and body as one message.
func (t *Telegram) Notify(title, body string) error {
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("🔔 %s\n%s", title, body))
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("error sending reminder to chat %d: %w", t.chatID, err)
	}
	return nil
}
