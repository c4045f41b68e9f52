package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/production-bot/internal/dialog"
	"github.com/Spok95/production-bot/internal/domain/common"
	"github.com/Spok95/production-bot/internal/domain/products"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var productTable = ui.Table[products.Product]{
	Columns: []ui.Column[products.Product]{
		ui.BuildIDColumn[products.Product](),
		{Title: "Nome do Produto", Value: func(p products.Product, _ int) string { return p.Name }},
		{Title: "Valor Unitário", Right: true, Value: func(p products.Product, _ int) string { return ui.FormatCurrency(p.Value) }},
		{Title: "Insumos", Right: true, Value: func(p products.Product, _ int) string { return materialsCount(len(p.Materials)) }},
	},
	EmptyText: "Não há produtos registrados",
}

func materialsCount(n int) string {
	if n == 1 {
		return "1 insumo"
	}
	return fmt.Sprintf("%d insumos", n)
}

func (b *Bot) openProducts(ctx context.Context, chatID int64, editMsgID *int) {
	s := b.session(chatID)
	_ = s.products.List.Mount(ctx)
	b.showProducts(chatID, editMsgID)
}

func (b *Bot) showProducts(chatID int64, editMsgID *int) int {
	list := b.session(chatID).products.List

	header := ui.EntityListHeader{
		Title:    "Produtos",
		Subtitle: ui.Subtitle(list.TotalItems(), "produto cadastrado", "produtos cadastrados"),
		AddLabel: "➕ Novo Produto",
	}
	parts := []string{header.Render()}
	if alert := ui.ErrorAlert(list.IsError(), "Não foi possível carregar os produtos."); alert != "" {
		parts = append(parts, alert)
	}
	parts = append(parts, productTable.Render(list.Items()))

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, p := range list.Items() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("✏️ #%d %s", p.ID, p.Name), fmt.Sprintf("pr:edit:%d", p.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("pr:del:%d", p.ID)),
		))
	}
	rows = append(rows, pagerRows("pr", list.CurrentPage(), list.TotalPages(), list.ItemsPerPage())...)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(header.AddLabel, "pr:add"),
	))

	return b.show(chatID, editMsgID, strings.Join(parts, "\n\n"), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showProductForm(chatID int64, editMsgID *int) int {
	s := b.session(chatID).products
	f := s.Form()
	errs := s.FieldErrors()

	title, submit := "Novo Produto", "Cadastrar"
	if s.Editing() != nil {
		title, submit = "Editar Produto", "Salvar"
	}

	var sb strings.Builder
	sb.WriteString("<b>" + title + "</b>\n\n")
	if s.MutationError() {
		sb.WriteString(ui.ErrorAlert(true, "") + "\n\n")
	}
	sb.WriteString("Nome: " + orPlaceholder(f.Name) + "\n")
	writeFieldError(&sb, errs, ui.FieldName)
	value := ui.Placeholder
	if f.Value != nil {
		value = ui.FormatCurrency(*f.Value)
	}
	sb.WriteString("Valor unitário: " + value + "\n")
	writeFieldError(&sb, errs, ui.FieldValue)

	sb.WriteString("\n<b>Insumos</b>\n")
	if len(f.Materials) == 0 {
		sb.WriteString("<i>Nenhum insumo adicionado</i>\n")
	}
	for i, m := range f.Materials {
		sb.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, orPlaceholder(m.Name), ui.FormatUnits(m.Quantity)))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Nome", "pr:field:name"),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Valor", "pr:field:value"),
		),
	}
	for i, m := range f.Materials {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("➖ %d. %s", i+1, m.Name), fmt.Sprintf("pr:mat:rm:%d", i)),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("➕ Adicionar Insumo", "pr:mat:add")),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(submit, "pr:submit"),
			tgbotapi.NewInlineKeyboardButtonData("Cancelar", "pr:cancel"),
		),
	)
	return b.show(chatID, editMsgID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// showPicker выбор сырья: варианты кнопками, текстовое сообщение ищет.
func (b *Bot) showPicker(chatID int64, editMsgID *int) int {
	p := b.session(chatID).products.Picker

	var sb strings.Builder
	sb.WriteString("<b>Selecione o insumo</b>\n")
	sb.WriteString("Envie uma mensagem para buscar pelo nome.\n")
	if p.Text() != "" {
		sb.WriteString("\nBusca: <i>" + escape(p.Text()) + "</i>\n")
	}
	if alert := ui.ErrorAlert(p.IsError(), "Não foi possível carregar os insumos."); alert != "" {
		sb.WriteString("\n" + alert + "\n")
	}
	opts := p.Options()
	if len(opts) == 0 {
		sb.WriteString("\n<i>Nenhum insumo encontrado.</i>")
	}

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, o := range opts {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, fmt.Sprintf("pr:pick:%d", o.Value)),
		))
	}
	if p.HasMore() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Carregar mais", "pr:more"),
		))
	}
	rows = append(rows, navKeyboard(true, false).InlineKeyboard[0])
	return b.show(chatID, editMsgID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) productActions(ctx context.Context, chatID int64, msgID int) ui.Actions[products.Product] {
	s := b.session(chatID)
	return ui.Actions[products.Product]{
		OnEdit: func(p products.Product) {
			_ = s.products.OpenEdit(ctx, p)
			b.showProductForm(chatID, &msgID)
		},
		OnDelete:    func(id int64) { _ = s.products.Delete(ctx, id) },
		DeleteLabel: "produto",
	}
}

func (b *Bot) findProduct(chatID int64, id int64) (products.Product, bool) {
	for _, p := range b.session(chatID).products.List.Items() {
		if p.ID == id {
			return p, true
		}
	}
	return products.Product{}, false
}

func (b *Bot) handleProductCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := cb.Data
	s := b.session(chatID)
	ps := s.products

	switch {
	case strings.HasPrefix(data, "pr:list:"):
		page, _ := parseTail(data, "pr:list:")
		_ = ps.List.SetCurrentPage(ctx, int(page))
		b.showProducts(chatID, &msgID)

	case strings.HasPrefix(data, "pr:size:"):
		n, _ := parseTail(data, "pr:size:")
		_ = ps.List.SetItemsPerPage(ctx, int(n))
		if ps.List.CurrentPage() > ps.List.TotalPages() {
			_ = ps.List.SetCurrentPage(ctx, ps.List.TotalPages())
		}
		b.showProducts(chatID, &msgID)

	case data == "pr:add":
		_ = ps.OpenCreate(ctx)
		b.showProductForm(chatID, &msgID)

	case strings.HasPrefix(data, "pr:edit:"):
		id, _ := parseTail(data, "pr:edit:")
		rec, ok := b.findProduct(chatID, id)
		if !ok {
			b.answerCallback(cb, "Produto não encontrado.", false)
			b.openProducts(ctx, chatID, &msgID)
			return
		}
		ui.BuildActionColumn(b.productActions(ctx, chatID, msgID))(rec).Edit()

	case data == "pr:del:yes", data == "pr:del:no":
		c := s.confirm
		s.confirm = nil
		if data == "pr:del:yes" && b.denyUnlessAdmin(ctx, cb) {
			b.showProducts(chatID, &msgID)
			return
		}
		if c != nil && s.confirmPrefix == "pr" {
			if data == "pr:del:yes" {
				c.Yes()
			} else {
				c.No()
			}
		}
		b.showProducts(chatID, &msgID)

	case strings.HasPrefix(data, "pr:del:"):
		if b.denyUnlessAdmin(ctx, cb) {
			return
		}
		id, _ := parseTail(data, "pr:del:")
		rec, ok := b.findProduct(chatID, id)
		if !ok {
			b.answerCallback(cb, "Produto não encontrado.", false)
			b.openProducts(ctx, chatID, &msgID)
			return
		}
		c := ui.BuildActionColumn(b.productActions(ctx, chatID, msgID))(rec).Delete()
		s.confirm, s.confirmPrefix = &c, "pr"
		b.show(chatID, &msgID, c.Render(), confirmKeyboard("pr", c.OkText, c.CancelText))

	case data == "pr:field:name":
		b.setStep(ctx, chatID, dialog.StateProdName, msgID, nil)
		b.editTextWithNav(chatID, msgID, "Digite o nome do produto:")

	case data == "pr:field:value":
		b.setStep(ctx, chatID, dialog.StateProdValue, msgID, nil)
		b.editTextWithNav(chatID, msgID, "Digite o valor unitário (ex.: 150,00):")

	case data == "pr:mat:add":
		b.setStep(ctx, chatID, dialog.StateProdSearch, msgID, nil)
		b.showPicker(chatID, &msgID)

	case strings.HasPrefix(data, "pr:mat:rm:"):
		i, _ := parseTail(data, "pr:mat:rm:")
		ps.RemoveMaterial(int(i))
		b.showProductForm(chatID, &msgID)

	case data == "pr:more":
		_ = ps.Picker.LoadMore(ctx)
		b.showPicker(chatID, &msgID)

	case strings.HasPrefix(data, "pr:pick:"):
		id, _ := parseTail(data, "pr:pick:")
		label, ok := ps.Picker.Label(id)
		if !ok {
			b.showPicker(chatID, &msgID)
			break
		}
		b.setStep(ctx, chatID, dialog.StateProdMatQty, msgID, dialog.Payload{dialog.KeyRawMaterialID: id})
		b.editTextWithNav(chatID, msgID, fmt.Sprintf("Quantidade de <b>%s</b> por unidade do produto:", escape(label)))

	case data == "pr:submit":
		if !ps.ModalOpen() {
			b.openProducts(ctx, chatID, &msgID)
			return
		}
		ok, _ := ps.Submit(ctx)
		if ok {
			b.resetStep(ctx, chatID)
			b.showProducts(chatID, &msgID)
			return
		}
		b.showProductForm(chatID, &msgID)

	case data == "pr:cancel":
		ps.Close()
		b.resetStep(ctx, chatID)
		b.showProducts(chatID, &msgID)

	default:
		b.showNotFound(chatID, &msgID)
	}
	b.answerCallback(cb, "", false)
}

// handleProductInput текст для поля формы продукта, поиск сырья или количество.
func (b *Bot) handleProductInput(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	ps := b.session(chatID).products
	if !ps.ModalOpen() {
		b.resetStep(ctx, chatID)
		b.openProducts(ctx, chatID, nil)
		return
	}

	switch st.State {
	case dialog.StateProdSearch:
		// экран выбора перерисуется сам, когда поиск отработает
		ps.Picker.OnSearch(ctx, strings.TrimSpace(text))
		return

	case dialog.StateProdName:
		ps.Form().Name = strings.TrimSpace(text)
		ps.ClearFieldError(ui.FieldName)

	case dialog.StateProdValue:
		v, err := common.ParseAmount(text)
		if err != nil || v.IsNegative() {
			b.send(tgbotapi.NewMessage(chatID, "Informe um valor válido, por exemplo 150,00."))
			return
		}
		ps.Form().Value = &v
		ps.ClearFieldError(ui.FieldValue)

	case dialog.StateProdMatQty:
		q, ok := parseQuantity(text)
		if !ok || q == 0 {
			b.send(tgbotapi.NewMessage(chatID, "Informe uma quantidade inteira maior que zero."))
			return
		}
		id, ok := dialog.GetInt64(st.Payload, dialog.KeyRawMaterialID)
		if ok {
			ps.AddMaterial(id, q)
		}
	}

	b.clearPrevStep(ctx, chatID)
	mid := b.showProductForm(chatID, nil)
	b.setStep(ctx, chatID, dialog.StateIdle, mid, nil)
}
