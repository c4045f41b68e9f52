package bot

import (
	"context"
	"strings"

	"github.com/Spok95/production-bot/internal/report"
	"github.com/Spok95/production-bot/internal/ui"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var productionTable = ui.Table[ui.RankedProduct]{
	Columns: []ui.Column[ui.RankedProduct]{
		{Title: "#", Right: true, Value: func(r ui.RankedProduct, _ int) string { return rankBadge(r.Rank) }},
		{Title: "Nome do Produto", Value: func(r ui.RankedProduct, _ int) string { return r.Name }},
		{Title: "Capacidade Máxima", Right: true, Value: func(r ui.RankedProduct, _ int) string { return ui.FormatUnits(r.MaxProductionCapacity) }},
		{Title: "Valor Total", Right: true, Value: func(r ui.RankedProduct, _ int) string { return ui.FormatCurrency(r.TotalValue) }},
	},
	EmptyText: ui.ProductionEmptyText,
}

func rankBadge(rank int) string {
	if rank == 1 {
		return "🥇1"
	}
	return ui.FormatNumber(int64(rank))
}

func productionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Atualizar", "prod:refresh"),
			tgbotapi.NewInlineKeyboardButtonData("📥 Exportar Excel", "prod:export"),
		),
	)
}

// openProduction сначала экран-заглушка, потом данные с бэкенда.
func (b *Bot) openProduction(ctx context.Context, chatID int64, editMsgID *int) {
	v := b.session(chatID).production
	mid := b.showProduction(chatID, editMsgID, true)
	_ = v.Mount(ctx)
	if mid == 0 {
		b.showProduction(chatID, nil, false)
		return
	}
	b.showProduction(chatID, &mid, false)
}

func (b *Bot) showProduction(chatID int64, editMsgID *int, loading bool) int {
	v := b.session(chatID).production
	loading = loading || v.IsLoading()
	st := v.Stats()

	topValue, topExtra := ui.Placeholder, ""
	if st.Top != nil {
		topValue, topExtra = ui.FormatUnits(st.Top.MaxProductionCapacity), st.Top.Name
	}
	cards := []ui.StatisticCard{
		{Label: "Valor Total de Produção", Value: ui.FormatCurrency(st.TotalValue), Loading: loading},
		{Label: "Produtos Simulados", Value: st.ProductCount, Loading: loading},
		{Label: "Maior Capacidade", Value: topValue, Extra: topExtra, Loading: loading},
	}

	parts := []string{"<b>Produção</b>"}
	if alert := ui.ErrorAlert(v.IsError(), ui.ProductionErrorText); alert != "" {
		parts = append(parts, alert)
	}
	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		lines = append(lines, c.Render())
	}
	parts = append(parts, strings.Join(lines, "\n"))
	if !loading {
		parts = append(parts, productionTable.Render(v.Rows()))
	}

	return b.show(chatID, editMsgID, strings.Join(parts, "\n\n"), productionKeyboard())
}

func (b *Bot) handleProductionCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	v := b.session(chatID).production

	switch cb.Data {
	case "prod:refresh":
		b.answerCallback(cb, "Atualizando…", false)
		b.showProduction(chatID, &msgID, true)
		_ = v.Refresh(ctx)
		b.showProduction(chatID, &msgID, false)
		return

	case "prod:export":
		if b.denyUnlessAdmin(ctx, cb) {
			return
		}
		b.answerCallback(cb, "Gerando planilha…", false)
		b.exportProduction(ctx, chatID)
		b.showProduction(chatID, &msgID, false)
		return
	}
	b.showNotFound(chatID, &msgID)
	b.answerCallback(cb, "", false)
}

// exportProduction свежий снимок в xlsx документом в чат.
func (b *Bot) exportProduction(ctx context.Context, chatID int64) {
	v := b.session(chatID).production
	if err := v.Refresh(ctx); err != nil {
		b.log.Error("production export: fetch failed", "chat_id", chatID, "err", err)
		chatNotifier{b: b, chatID: chatID}.Notify(ui.Notification{Kind: ui.NotifyError, Text: ui.ProductionErrorText})
		return
	}
	snap, _ := v.Snapshot()

	now := b.now().In(b.loc)
	data, err := report.ProductionWorkbook(snap, now)
	if err != nil {
		b.log.Error("production export: workbook failed", "chat_id", chatID, "err", err)
		chatNotifier{b: b, chatID: chatID}.Notify(ui.Notification{Kind: ui.NotifyError, Text: "Erro ao gerar a planilha."})
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.FileName(now),
		Bytes: data,
	})
	doc.Caption = "Simulação de produção com o estoque atual."
	b.send(doc)
}
