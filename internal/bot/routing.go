package bot

import (
	"context"
	"strings"

	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/domain/users"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "Comandos:\n" +
	"/start — menu principal\n" +
	"/products — produtos\n" +
	"/rawmaterials — insumos\n" +
	"/production — simulação de produção\n" +
	"/help — ajuda\n\n" +
	"Nos formulários, toque em ✏️ e envie o valor como mensagem."

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	// команда прерывает любой ввод
	b.clearPrevStep(ctx, chatID)
	b.resetStep(ctx, chatID)

	switch msg.Command() {
	case "start":
		if msg.From != nil && b.users != nil {
			role := users.RoleOperator
			if msg.From.ID == b.adminChat {
				role = users.RoleAdmin
			}
			tg := users.Telegram{
				ID:        msg.From.ID,
				Username:  msg.From.UserName,
				FirstName: msg.From.FirstName,
				LastName:  msg.From.LastName,
			}
			if _, err := b.users.UpsertFromTelegram(ctx, tg, role); err != nil {
				b.log.Error("user upsert failed", "tg_id", msg.From.ID, "err", err)
			}
		}
		m := tgbotapi.NewMessage(chatID, "Olá! Use o menu abaixo para gerenciar produtos, insumos e a produção.")
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)

	case "help":
		m := tgbotapi.NewMessage(chatID, helpText)
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)

	case "products":
		b.openProducts(ctx, chatID, nil)

	case "rawmaterials":
		b.openRawMaterials(ctx, chatID, nil)

	case "production":
		b.openProduction(ctx, chatID, nil)

	default:
		b.showNotFound(chatID, nil)
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	// Нижняя панель работает из любого шага
	switch text {
	case menuProducts:
		b.leaveStep(ctx, chatID)
		b.openProducts(ctx, chatID, nil)
		return
	case menuRawMaterials:
		b.leaveStep(ctx, chatID)
		b.openRawMaterials(ctx, chatID, nil)
		return
	case menuProduction:
		b.leaveStep(ctx, chatID)
		b.openProduction(ctx, chatID, nil)
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state load failed", "chat_id", chatID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, ui.DefaultErrorText))
		return
	}

	switch st.State {
	case dialog.StateRawName, dialog.StateRawStock:
		b.handleRawInput(ctx, chatID, st, text)
	case dialog.StateProdName, dialog.StateProdValue, dialog.StateProdSearch, dialog.StateProdMatQty:
		b.handleProductInput(ctx, chatID, st, text)
	default:
		b.showNotFound(chatID, nil)
	}
}

// leaveStep убирает кнопки прошлого шага и сбрасывает ввод.
func (b *Bot) leaveStep(ctx context.Context, chatID int64) {
	b.clearPrevStep(ctx, chatID)
	b.resetStep(ctx, chatID)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		b.answerCallback(cb, "", false)
		return
	}
	data := cb.Data
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	// Общая навигация
	switch data {
	case "nav:noop":
		b.answerCallback(cb, "", false)
		return
	case "nav:home":
		b.resetStep(ctx, chatID)
		b.openProducts(ctx, chatID, &msgID)
		b.answerCallback(cb, "", false)
		return
	case "nav:cancel":
		s := b.session(chatID)
		s.raw.Close()
		s.products.Close()
		s.confirm = nil
		b.resetStep(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Operação cancelada.")
		b.answerCallback(cb, "Cancelado", false)
		return
	case "nav:back":
		b.handleBack(ctx, chatID, msgID)
		b.answerCallback(cb, "", false)
		return
	}

	switch {
	case strings.HasPrefix(data, "rm:"):
		b.handleRawCallback(ctx, cb)
	case strings.HasPrefix(data, "pr:"):
		b.handleProductCallback(ctx, cb)
	case strings.HasPrefix(data, "prod:"):
		b.handleProductionCallback(ctx, cb)
	default:
		b.showNotFound(chatID, &msgID)
		b.answerCallback(cb, "", false)
	}
}

// handleBack шаг назад: из ввода поля к карточке формы, из количества к выбору сырья.
func (b *Bot) handleBack(ctx context.Context, chatID int64, msgID int) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state load failed", "chat_id", chatID, "err", err)
		return
	}
	s := b.session(chatID)

	switch st.State {
	case dialog.StateRawName, dialog.StateRawStock:
		b.setStep(ctx, chatID, dialog.StateIdle, msgID, nil)
		if s.raw.ModalOpen() {
			b.showRawForm(chatID, &msgID)
			return
		}
		b.showRawMaterials(chatID, &msgID)

	case dialog.StateProdMatQty:
		b.setStep(ctx, chatID, dialog.StateProdSearch, msgID, nil)
		b.showPicker(chatID, &msgID)

	case dialog.StateProdName, dialog.StateProdValue, dialog.StateProdSearch:
		b.setStep(ctx, chatID, dialog.StateIdle, msgID, nil)
		if s.products.ModalOpen() {
			b.showProductForm(chatID, &msgID)
			return
		}
		b.showProducts(chatID, &msgID)

	default:
		b.openProducts(ctx, chatID, &msgID)
	}
}

func (b *Bot) showNotFound(chatID int64, editMsgID *int) {
	b.show(chatID, editMsgID, "<b>404</b>\n"+ui.NotFoundText, notFoundKeyboard())
}
