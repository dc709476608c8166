package bot

import (
	"fmt"

	"productbot/assistant/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Sender delivers outgoing messages. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Navigator is the core the handler drives.
type Navigator interface {
	HandleMenuSelection(userID int64, section domain.Section) []string
	HandleBack(userID int64)
	HandleFreeText(userID int64, text string) (*domain.Response, bool)
}

type Handler struct {
	sender   Sender
	nav      Navigator
	groupURL string
}

func NewHandler(sender Sender, nav Navigator, groupURL string) *Handler {
	return &Handler{
		sender:   sender,
		nav:      nav,
		groupURL: groupURL,
	}
}

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}

	chatID := msg.Chat.ID
	userID := chatID
	if msg.From != nil {
		userID = msg.From.ID
	}

	switch msg.Text {
	case cmdStart:
		h.nav.HandleBack(userID)
		h.sendMenu(chatID, "👋 Добро пожаловать! Выберите раздел:")
		return
	case btnBack:
		h.nav.HandleBack(userID)
		h.sendMenu(chatID, "🔙 Назад в главное меню")
		return
	case btnSubscribe:
		if h.groupURL != "" {
			reply := tgbotapi.NewMessage(chatID, "Подпишитесь на наш канал:")
			reply.ReplyMarkup = singleLinkButton("Перейти в Telegram группу", h.groupURL)
			h.send(reply)
			return
		}
	}

	if section, ok := sectionButtons[msg.Text]; ok {
		h.showSection(chatID, userID, section)
		return
	}

	resp, ok := h.nav.HandleFreeText(userID, msg.Text)
	if !ok {
		return
	}
	h.sendResponse(chatID, resp)
}

func (h *Handler) showSection(chatID, userID int64, section domain.Section) {
	products := h.nav.HandleMenuSelection(userID, section)

	text := "Выберите товар:"
	if len(products) == 0 {
		text = "Нет данных"
	}
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = productMenu(products)
	h.send(reply)
}

func (h *Handler) sendResponse(chatID int64, resp *domain.Response) {
	switch {
	case resp.Section == domain.SectionInstructions && resp.Kind == domain.ResponseLinks:
		for _, entry := range resp.Links {
			h.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("📄 Инструкция по товару %s:\n%s", resp.Product, entry.URL)))
		}

	case resp.Kind == domain.ResponseLinks:
		title := fmt.Sprintf("📚 Уроки по товару %s:", resp.Product)
		if resp.Section == domain.SectionCatalog {
			title = fmt.Sprintf("🛒 Где купить %s:", resp.Product)
		}
		reply := tgbotapi.NewMessage(chatID, title)
		reply.ReplyMarkup = linkButtons(resp.Links)
		h.send(reply)

	case resp.Kind == domain.ResponseSingleLink:
		reply := tgbotapi.NewMessage(chatID, fmt.Sprintf("🛒 %s", resp.Product))
		reply.ReplyMarkup = singleLinkButton("Купить", resp.URL)
		h.send(reply)

	case resp.Kind == domain.ResponseUnavailable:
		h.send(tgbotapi.NewMessage(chatID, "Ссылка недоступна"))
	}
}

func (h *Handler) sendMenu(chatID int64, text string) {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyMarkup = mainMenu(h.groupURL != "")
	h.send(reply)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.sender.Send(c); err != nil {
		log.Errorf("❌ Failed to send message: %v", err)
	}
}
