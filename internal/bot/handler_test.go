package bot

import (
	"errors"
	"sync"
	"testing"

	"productbot/assistant/internal/domain"
	"productbot/assistant/internal/repository"
	"productbot/assistant/internal/service"
	"productbot/assistant/internal/state"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	chatID int64 = 500
	userID int64 = 77
)

type fakeSender struct {
	mutex sync.Mutex
	sent  []tgbotapi.MessageConfig
	err   error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) reset() {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.sent = nil
}

func (f *fakeSender) messages() []tgbotapi.MessageConfig {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]tgbotapi.MessageConfig(nil), f.sent...)
}

func newTestHandler(t *testing.T, groupURL string) (*Handler, *fakeSender) {
	t.Helper()

	repo := repository.NewCatalogRepository()
	repo.Publish(
		&domain.TableData{Kind: domain.TableKindVideos, Lessons: domain.LessonIndex{
			"Widget": {
				{Label: "Part 1", URL: "https://v.example/1"},
				{Label: "Part 2", URL: "https://v.example/2"},
			},
		}},
		&domain.TableData{Kind: domain.TableKindInstructions, Lessons: domain.LessonIndex{
			"Widget": {
				{Label: "Instruction", URL: "https://docs.example/1"},
				{Label: "Instruction", URL: "https://docs.example/2"},
			},
		}},
		&domain.TableData{Kind: domain.TableKindCatalog, Catalog: domain.CatalogIndex{
			"Widget":  {DefaultURL: "https://d.example", Marketplaces: []domain.MarketplaceLink{{Name: "ShopA", URL: "https://a.example"}}},
			"Default": {DefaultURL: "https://d.example/only"},
			"None":    {},
		}},
	)

	sender := &fakeSender{}
	router := service.NewRouter(repo, state.NewMemoryStateStore())
	return NewHandler(sender, router, groupURL), sender
}

func message(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: userID},
	}
}

func keyboardTexts(t *testing.T, markup any) []string {
	t.Helper()

	kb, ok := markup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok, "expected reply keyboard, got %T", markup)

	var texts []string
	for _, row := range kb.Keyboard {
		for _, btn := range row {
			texts = append(texts, btn.Text)
		}
	}
	return texts
}

func inlineURLs(t *testing.T, markup any) map[string]string {
	t.Helper()

	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "expected inline keyboard, got %T", markup)

	urls := make(map[string]string)
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.URL)
			urls[btn.Text] = *btn.URL
		}
	}
	return urls
}

func TestStartShowsMainMenu(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(message("/start"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, chatID, sender.sent[0].ChatID)
	assert.Equal(t, []string{btnVideos, btnInstructions, btnCatalog}, keyboardTexts(t, sender.sent[0].ReplyMarkup))
}

func TestMainMenuIncludesSubscribeWhenGroupConfigured(t *testing.T) {
	h, sender := newTestHandler(t, "https://t.me/group")

	h.HandleMessage(message("/start"))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, keyboardTexts(t, sender.sent[0].ReplyMarkup), btnSubscribe)

	sender.reset()
	h.HandleMessage(message(btnSubscribe))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, map[string]string{"Перейти в Telegram группу": "https://t.me/group"}, inlineURLs(t, sender.sent[0].ReplyMarkup))
}

func TestSectionSelectionListsProducts(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(message(btnCatalog))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"Default", "None", "Widget", btnBack}, keyboardTexts(t, sender.sent[0].ReplyMarkup))
}

func TestVideosReplyWithInlineButtons(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(message(btnVideos))
	sender.reset()
	h.HandleMessage(message("Widget"))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, map[string]string{
		"Part 1": "https://v.example/1",
		"Part 2": "https://v.example/2",
	}, inlineURLs(t, sender.sent[0].ReplyMarkup))
}

func TestInstructionsReplyWithOneMessagePerEntry(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(message(btnInstructions))
	sender.reset()
	h.HandleMessage(message("Widget"))

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0].Text, "https://docs.example/1")
	assert.Contains(t, sender.sent[1].Text, "https://docs.example/2")
}

func TestCatalogReplies(t *testing.T) {
	h, sender := newTestHandler(t, "")
	h.HandleMessage(message(btnCatalog))

	sender.reset()
	h.HandleMessage(message("Widget"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, map[string]string{"ShopA": "https://a.example"}, inlineURLs(t, sender.sent[0].ReplyMarkup))

	sender.reset()
	h.HandleMessage(message("Default"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, map[string]string{"Купить": "https://d.example/only"}, inlineURLs(t, sender.sent[0].ReplyMarkup))

	sender.reset()
	h.HandleMessage(message("None"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Ссылка недоступна", sender.sent[0].Text)
}

func TestUnknownTextIsIgnored(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(message("Widget"))
	assert.Empty(t, sender.sent)

	h.HandleMessage(message(btnVideos))
	h.HandleMessage(message(btnBack))
	sender.reset()

	h.HandleMessage(message("Widget"))
	assert.Empty(t, sender.sent)
}

func TestSubscribeWithoutGroupIsIgnored(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(message(btnSubscribe))
	assert.Empty(t, sender.sent)
}

func TestSendErrorsAreSwallowed(t *testing.T) {
	h, sender := newTestHandler(t, "")
	sender.err = errors.New("network down")

	assert.NotPanics(t, func() { h.HandleMessage(message("/start")) })
	assert.Len(t, sender.sent, 1)
}

func TestMessagesWithoutChatAreIgnored(t *testing.T) {
	h, sender := newTestHandler(t, "")

	h.HandleMessage(nil)
	h.HandleMessage(&tgbotapi.Message{Text: "/start"})
	assert.Empty(t, sender.sent)
}
