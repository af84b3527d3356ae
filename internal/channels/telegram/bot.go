// Package telegram answers Telegram chats with the advisory chat handler.
// Each Telegram chat is bound to one advisory session.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "agro-advisor/internal/common/errors"
	httpclient "agro-advisor/internal/common/http"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/models"
	"agro-advisor/internal/session"
	chatreply "agro-advisor/internal/workers/advisory/chat-reply"
)

const (
	HelpText = "Comandos disponibles:\n" +
		"/start - Iniciar una nueva conversación\n" +
		"/online - Usar el modo Online\n" +
		"/offline - Usar el modo Offline\n" +
		"/help - Mostrar esta ayuda\n\n" +
		"También puedes escribir tu consulta sobre maíz, tomate, plagas o fertilizantes."
	OnlineText     = "Modo Online activado."
	OfflineText    = "Modo Offline activado. Responderé con mi conocimiento local."
	UnknownCommand = "Comando desconocido. Usa /help para ver los comandos disponibles."
	ErrorText      = "No pude procesar tu consulta. Inténtalo de nuevo más tarde."
)

// Sender delivers messages to Telegram. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	timeout  int
	chat     *chatreply.Handler
	sessions *session.Manager
	log      logger.Logger

	mu    sync.Mutex
	chats map[int64]string
}

// New authorizes token against the Bot API. timeout is the long-poll
// timeout in seconds.
func New(token string, timeout int, chat *chatreply.Handler, sessions *session.Manager, log logger.Logger) (*Bot, error) {
	client := httpclient.NewLongPollClient(time.Duration(timeout) * time.Second)
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	b := NewWithSender(api, chat, sessions, log)
	b.api = api
	b.timeout = timeout
	return b, nil
}

func NewWithSender(sender Sender, chat *chatreply.Handler, sessions *session.Manager, log logger.Logger) *Bot {
	return &Bot{
		sender:   sender,
		chat:     chat,
		sessions: sessions,
		log:      log.WithFields(map[string]interface{}{"component": "telegram"}),
		chats:    make(map[int64]string),
	}
}

// Run long-polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if b.api == nil {
		return fmt.Errorf("telegram bot has no API client")
	}
	b.log.Info("Authorized on Telegram", map[string]interface{}{"account": b.api.Self.UserName})

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.log.Info("Telegram bot stopped", nil)
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate answers a single update. Updates without a message are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	message := update.Message
	msg := tgbotapi.NewMessage(message.Chat.ID, "")

	if message.IsCommand() {
		b.handleCommand(ctx, message, &msg)
	} else {
		if strings.TrimSpace(message.Text) == "" {
			return
		}
		b.handleText(ctx, message, &msg)
	}

	if _, err := b.sender.Send(msg); err != nil {
		b.log.Error("Error sending message", map[string]interface{}{"chatId": message.Chat.ID, "error": err.Error()})
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	chatID := message.Chat.ID
	b.log.Debug("Handling command", map[string]interface{}{"chatId": chatID, "command": message.Command()})

	switch message.Command() {
	case "start":
		if _, err := b.newSession(ctx, chatID); err != nil {
			b.log.Error("Failed to create session", map[string]interface{}{"chatId": chatID, "error": err.Error()})
			msg.Text = ErrorText
			return
		}
		msg.Text = models.GreetingText
		msg.ReplyMarkup = suggestionKeyboard(models.GreetingSuggestions)
	case "help":
		msg.Text = HelpText
	case "online", "offline":
		online := message.Command() == "online"
		if err := b.setOnline(ctx, chatID, online); err != nil {
			b.log.Error("Failed to update connectivity", map[string]interface{}{"chatId": chatID, "error": err.Error()})
			msg.Text = ErrorText
			return
		}
		msg.Text = OfflineText
		if online {
			msg.Text = OnlineText
		}
	default:
		msg.Text = UnknownCommand
	}
}

func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message, msg *tgbotapi.MessageConfig) {
	chatID := message.Chat.ID

	out, err := b.withSession(ctx, chatID, func(id string) (*chatreply.Output, error) {
		return b.chat.Execute(ctx, &chatreply.Input{SessionID: id, Message: message.Text})
	})
	if err != nil {
		b.log.Error("Chat reply failed", map[string]interface{}{
			"chatId":    chatID,
			"errorCode": apperrors.CodeOf(err),
			"error":     err.Error(),
		})
		msg.Text = ErrorText
		return
	}

	msg.Text = out.BotMessage.Content
	msg.ReplyMarkup = suggestionKeyboard(out.BotMessage.Suggestions)
}

func (b *Bot) setOnline(ctx context.Context, chatID int64, online bool) error {
	_, err := b.withSession(ctx, chatID, func(id string) (*chatreply.Output, error) {
		_, err := b.sessions.Update(ctx, id, func(s *models.Session) error {
			s.IsOnline = online
			return nil
		})
		return nil, err
	})
	return err
}

// withSession runs fn with the chat's session, replacing a session that
// expired in the store once.
func (b *Bot) withSession(ctx context.Context, chatID int64, fn func(id string) (*chatreply.Output, error)) (*chatreply.Output, error) {
	id, ok := b.sessionID(chatID)
	if !ok {
		var err error
		if id, err = b.newSession(ctx, chatID); err != nil {
			return nil, err
		}
	}

	out, err := fn(id)
	if apperrors.CodeOf(err) != string(apperrors.ErrCodeSessionNotFound) {
		return out, err
	}

	if id, err = b.newSession(ctx, chatID); err != nil {
		return nil, err
	}
	return fn(id)
}

func (b *Bot) sessionID(chatID int64) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.chats[chatID]
	return id, ok
}

func (b *Bot) newSession(ctx context.Context, chatID int64) (string, error) {
	s, err := b.sessions.Create(ctx)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	b.chats[chatID] = s.ID
	b.mu.Unlock()
	return s.ID, nil
}

// suggestionKeyboard lays suggestions out two per row.
func suggestionKeyboard(suggestions []string) interface{} {
	if len(suggestions) == 0 {
		return nil
	}
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(suggestions); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(suggestions[i])}
		if i+1 < len(suggestions) {
			row = append(row, tgbotapi.NewKeyboardButton(suggestions[i+1]))
		}
		rows = append(rows, row)
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true
	return keyboard
}
