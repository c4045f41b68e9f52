package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Spok95/production-bot/internal/domain/production"
	"github.com/xuri/excelize/v2"
)

const (
	SheetProduction = "Produção"
	SheetSummary    = "Resumo"
)

// FileName имя файла выгрузки, например production_20261016_093000.xlsx.
func FileName(at time.Time) string {
	return fmt.Sprintf("production_%s.xlsx", at.Format("20060102_150405"))
}

// ProductionWorkbook выгрузка симуляции: лист с рейтингом в порядке ответа и лист с итогами.
func ProductionWorkbook(snap production.Snapshot, at time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetProduction); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"#", "ID", "Nome do Produto", "Capacidade Máxima", "Valor Total"}
	if err := f.SetSheetRow(SheetProduction, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for i, p := range snap.Products {
		excelRow := []interface{}{
			i + 1,
			p.ID,
			p.Name,
			p.MaxProductionCapacity,
			p.TotalValue.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(SheetProduction, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(`"R$" #,##0.00`)})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}
	if row > 2 {
		if err := f.SetCellStyle(SheetProduction, "E2", fmt.Sprintf("E%d", row-1), money); err != nil {
			return nil, fmt.Errorf("apply money style: %w", err)
		}
	}
	_ = f.SetColWidth(SheetProduction, "C", "C", 32)
	_ = f.SetColWidth(SheetProduction, "D", "E", 20)

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	topName, topCap := "—", int64(0)
	if top := production.Top(snap.Products); top != nil {
		topName, topCap = top.Name, top.MaxProductionCapacity
	}
	summary := [][]interface{}{
		{"Gerado em", at.Format("02/01/2006 15:04")},
		{"Valor Total de Produção", snap.TotalProductionValue.InexactFloat64()},
		{"Produtos Simulados", len(snap.Products)},
		{"Maior Capacidade", topCap},
		{"Produto com Maior Capacidade", topName},
	}
	for i, r := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(SheetSummary, cell, &r); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(SheetSummary, "B2", "B2", money); err != nil {
		return nil, fmt.Errorf("apply money style: %w", err)
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 32)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func ptr[T any](v T) *T { return &v }
