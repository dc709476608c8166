package bot

import (
	"productbot/assistant/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnVideos       = "🎥 Обучающие видео"
	btnInstructions = "📄 Инструкции"
	btnCatalog      = "🛒 Каталог"
	btnSubscribe    = "👥 Подписаться на группу"
	btnBack         = "⬅️ Назад"

	cmdStart = "/start"
)

var sectionButtons = map[string]domain.Section{
	btnVideos:       domain.SectionVideos,
	btnInstructions: domain.SectionInstructions,
	btnCatalog:      domain.SectionCatalog,
}

func mainMenu(withSubscribe bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnVideos)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnInstructions)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCatalog)),
	}
	if withSubscribe {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSubscribe)))
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// productMenu shows one product per row followed by the back button.
func productMenu(products []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(products)+1)
	for _, product := range products {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(product)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnBack)))

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

func linkButtons(links []domain.LessonEntry) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(links))
	for _, link := range links {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(link.Label, link.URL)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func singleLinkButton(text, url string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(text, url)),
	)
}
