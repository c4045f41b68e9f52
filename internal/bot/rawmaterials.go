package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/domain/rawmaterials"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var rawTable = ui.Table[rawmaterials.RawMaterial]{
	Columns: []ui.Column[rawmaterials.RawMaterial]{
		ui.BuildIDColumn[rawmaterials.RawMaterial](),
		{Title: "Nome do Insumo", Value: func(r rawmaterials.RawMaterial, _ int) string { return r.Name }},
		{Title: "Estoque", Right: true, Value: func(r rawmaterials.RawMaterial, _ int) string { return ui.FormatUnits(r.StockQuantity) }},
	},
	EmptyText: "Não há insumos registrados",
}

func (b *Bot) openRawMaterials(ctx context.Context, chatID int64, editMsgID *int) {
	s := b.session(chatID)
	// вход на экран всегда с бэкенда
	_ = s.raw.List.Mount(ctx)
	b.showRawMaterials(chatID, editMsgID)
}

func (b *Bot) showRawMaterials(chatID int64, editMsgID *int) int {
	s := b.session(chatID)
	list := s.raw.List

	header := ui.EntityListHeader{
		Title:    "Insumos",
		Subtitle: ui.Subtitle(list.TotalItems(), "insumo cadastrado", "insumos cadastrados"),
		AddLabel: "➕ Novo Insumo",
	}
	parts := []string{header.Render()}
	if alert := ui.ErrorAlert(list.IsError(), "Não foi possível carregar os insumos."); alert != "" {
		parts = append(parts, alert)
	}
	parts = append(parts, rawTable.Render(list.Items()))

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, m := range list.Items() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✏️ #%d %s", m.ID, m.Name), fmt.Sprintf("rm:edit:%d", m.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("rm:del:%d", m.ID)),
		))
	}
	rows = append(rows, pagerRows("rm", list.CurrentPage(), list.TotalPages(), list.ItemsPerPage())...)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(header.AddLabel, "rm:add"),
	))

	return b.show(chatID, editMsgID, strings.Join(parts, "\n\n"), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showRawForm(chatID int64, editMsgID *int) int {
	c := b.session(chatID).raw
	f := c.Form()
	errs := c.FieldErrors()

	title, submit := "Novo Insumo", "Cadastrar"
	if c.Editing() != nil {
		title, submit = "Editar Insumo", "Salvar"
	}

	var sb strings.Builder
	sb.WriteString("<b>" + title + "</b>\n\n")
	if c.MutationError() {
		sb.WriteString(ui.ErrorAlert(true, "") + "\n\n")
	}
	sb.WriteString("Nome: " + orPlaceholder(f.Name) + "\n")
	writeFieldError(&sb, errs, ui.FieldName)
	stock := ui.Placeholder
	if f.StockQuantity != nil {
		stock = ui.FormatUnits(*f.StockQuantity)
	}
	sb.WriteString("Quantidade em estoque: " + stock + "\n")
	writeFieldError(&sb, errs, ui.FieldStockQuantity)

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Nome", "rm:field:name"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Estoque", "rm:field:stock"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(submit, "rm:submit"),
			tgbotapi.NewInlineKeyboardButtonData("Cancelar", "rm:cancel"),
		),
	)
	return b.show(chatID, editMsgID, sb.String(), kb)
}

func (b *Bot) rawActions(ctx context.Context, chatID int64, msgID int) ui.Actions[rawmaterials.RawMaterial] {
	s := b.session(chatID)
	return ui.Actions[rawmaterials.RawMaterial]{
		OnEdit: func(r rawmaterials.RawMaterial) {
			s.raw.OpenEdit(r)
			b.showRawForm(chatID, &msgID)
		},
		OnDelete:    func(id int64) { _ = s.raw.Delete(ctx, id) },
		DeleteLabel: "insumo",
	}
}

func (b *Bot) findRawMaterial(chatID int64, id int64) (rawmaterials.RawMaterial, bool) {
	for _, m := range b.session(chatID).raw.List.Items() {
		if m.ID == id {
			return m, true
		}
	}
	return rawmaterials.RawMaterial{}, false
}

func (b *Bot) handleRawCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := cb.Data
	s := b.session(chatID)

	switch {
	case strings.HasPrefix(data, "rm:list:"):
		page, _ := parseTail(data, "rm:list:")
		_ = s.raw.List.SetCurrentPage(ctx, int(page))
		b.showRawMaterials(chatID, &msgID)

	case strings.HasPrefix(data, "rm:size:"):
		n, _ := parseTail(data, "rm:size:")
		_ = s.raw.List.SetItemsPerPage(ctx, int(n))
		if s.raw.List.CurrentPage() > s.raw.List.TotalPages() {
			_ = s.raw.List.SetCurrentPage(ctx, s.raw.List.TotalPages())
		}
		b.showRawMaterials(chatID, &msgID)

	case data == "rm:add":
		s.raw.OpenCreate()
		b.showRawForm(chatID, &msgID)

	case strings.HasPrefix(data, "rm:edit:"):
		id, _ := parseTail(data, "rm:edit:")
		rec, ok := b.findRawMaterial(chatID, id)
		if !ok {
			b.answerCallback(cb, "Insumo não encontrado.", false)
			b.openRawMaterials(ctx, chatID, &msgID)
			return
		}
		ui.BuildActionColumn(b.rawActions(ctx, chatID, msgID))(rec).Edit()

	case data == "rm:del:yes", data == "rm:del:no":
		c := s.confirm
		s.confirm = nil
		if data == "rm:del:yes" && b.denyUnlessAdmin(ctx, cb) {
			b.showRawMaterials(chatID, &msgID)
			return
		}
		if c != nil && s.confirmPrefix == "rm" {
			if data == "rm:del:yes" {
				c.Yes()
			} else {
				c.No()
			}
		}
		b.showRawMaterials(chatID, &msgID)

	case strings.HasPrefix(data, "rm:del:"):
		if b.denyUnlessAdmin(ctx, cb) {
			return
		}
		id, _ := parseTail(data, "rm:del:")
		rec, ok := b.findRawMaterial(chatID, id)
		if !ok {
			b.answerCallback(cb, "Insumo não encontrado.", false)
			b.openRawMaterials(ctx, chatID, &msgID)
			return
		}
		c := ui.BuildActionColumn(b.rawActions(ctx, chatID, msgID))(rec).Delete()
		s.confirm, s.confirmPrefix = &c, "rm"
		b.show(chatID, &msgID, c.Render(), confirmKeyboard("rm", c.OkText, c.CancelText))

	case data == "rm:field:name":
		b.setStep(ctx, chatID, dialog.StateRawName, msgID, nil)
		b.editTextWithNav(chatID, msgID, "Digite o nome do insumo:")

	case data == "rm:field:stock":
		b.setStep(ctx, chatID, dialog.StateRawStock, msgID, nil)
		b.editTextWithNav(chatID, msgID, "Digite a quantidade em estoque:")

	case data == "rm:submit":
		if !s.raw.ModalOpen() {
			b.openRawMaterials(ctx, chatID, &msgID)
			return
		}
		ok, _ := s.raw.Submit(ctx)
		if ok {
			b.resetStep(ctx, chatID)
			b.showRawMaterials(chatID, &msgID)
			return
		}
		b.showRawForm(chatID, &msgID)

	case data == "rm:cancel":
		s.raw.Close()
		b.resetStep(ctx, chatID)
		b.showRawMaterials(chatID, &msgID)

	default:
		b.showNotFound(chatID, &msgID)
	}
	b.answerCallback(cb, "", false)
}

// handleRawInput текст для поля формы сырья.
func (b *Bot) handleRawInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	c := b.session(chatID).raw
	if !c.ModalOpen() {
		b.resetStep(ctx, chatID)
		b.openRawMaterials(ctx, chatID, nil)
		return
	}

	switch st.State {
	case dialog.StateRawName:
		c.Form().Name = strings.TrimSpace(text)
		c.ClearFieldError(ui.FieldName)
	case dialog.StateRawStock:
		q, ok := parseQuantity(text)
		if !ok {
			b.send(tgbotapi.NewMessage(chatID, "Informe um número inteiro, por exemplo 100."))
			return
		}
		c.Form().StockQuantity = &q
		c.ClearFieldError(ui.FieldStockQuantity)
	}

	b.clearPrevStep(ctx, chatID)
	mid := b.showRawForm(chatID, nil)
	b.setStep(ctx, chatID, dialog.StateIdle, mid, nil)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return ui.Placeholder
	}
	return escape(s)
}

func writeFieldError(sb *strings.Builder, errs ui.FieldErrors, field string) {
	if msg, ok := errs[field]; ok {
		sb.WriteString("   ⚠️ <i>" + escape(msg) + "</i>\n")
	}
}
