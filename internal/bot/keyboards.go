package bot

import (
	"fmt"

	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	menuProducts     = "Produtos"
	menuRawMaterials = "Insumos"
	menuProduction   = "Produção"
)

var pageSizes = []int{10, 20, 50}

// mainReplyKeyboard Нижняя панель (ReplyKeyboard)
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(menuProducts), tgbotapi.NewKeyboardButton(menuRawMaterials)},
			{tgbotapi.NewKeyboardButton(menuProduction)},
		},
	}
}

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Voltar", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Cancelar", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// pagerRows "◀️ n/m ▶️" и переключатель размера страницы. prefix: "rm" или "pr".
func pagerRows(prefix string, page, total, perPage int) [][]tgbotapi.InlineKeyboardButton {
	nav := []tgbotapi.InlineKeyboardButton{}
	if page > 1 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", fmt.Sprintf("%s:list:%d", prefix, page-1)))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page, total), "nav:noop"))
	if page < total {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", fmt.Sprintf("%s:list:%d", prefix, page+1)))
	}

	sizes := []tgbotapi.InlineKeyboardButton{}
	for _, n := range pageSizes {
		label := fmt.Sprintf("%d", n)
		if n == perPage {
			label = "• " + label
		}
		sizes = append(sizes, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s:size:%d", prefix, n)))
	}
	return [][]tgbotapi.InlineKeyboardButton{nav, sizes}
}

func confirmKeyboard(prefix string, okText, cancelText string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(okText, prefix+":del:yes"),
			tgbotapi.NewInlineKeyboardButtonData(cancelText, prefix+":del:no"),
		),
	)
}

func notFoundKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ui.NotFoundAction, "nav:home"),
		),
	)
}
