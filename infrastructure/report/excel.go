package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet     = "Resultados"
	diagnosticsSheet = "Diagnóstico"
	comparisonSheet  = "Comparação por ASIN"
	skuSheet         = "Comparação por SKU"
)

type ExcelWriter struct {
	outputDir string
}

func NewExcelWriter(outputDir string) *ExcelWriter {
	return &ExcelWriter{outputDir: outputDir}
}

// Write grava a execução em uma planilha XLSX com uma aba de resultados e
// uma aba de diagnóstico, e retorna o caminho gerado.
func (w *ExcelWriter) Write(run *domain.AnalysisRun) (string, error) {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName(file.GetSheetName(0), resultsSheet)

	if err := w.writeResults(file, run); err != nil {
		return "", err
	}

	if err := w.writeDiagnostics(file, run); err != nil {
		return "", err
	}

	path, err := w.save(file, reportFileName(run, "xlsx"))
	if err != nil {
		return "", err
	}

	log.L.WithFields(log.Fields{
		"run_id": run.ID,
		"file":   path,
		"rows":   len(run.Results),
	}).Info("Relatório XLSX gerado")

	return path, nil
}

// ExportRun serializa a execução em memória, para download via API sem
// tocar o disco.
func (w *ExcelWriter) ExportRun(run *domain.AnalysisRun) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName(file.GetSheetName(0), resultsSheet)

	if err := w.writeResults(file, run); err != nil {
		return nil, err
	}

	if err := w.writeDiagnostics(file, run); err != nil {
		return nil, err
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "serializando planilha")
	}

	return buffer.Bytes(), nil
}

// WriteComparison grava a comparação anual em uma planilha com as abas por
// ASIN e por SKU.
func (w *ExcelWriter) WriteComparison(comparison *domain.SeasonComparison) (string, error) {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName(file.GetSheetName(0), comparisonSheet)

	header := []interface{}{
		"ASIN", "SKUs",
		fmt.Sprintf("Total %d", comparison.Summary.PreviousYear),
		fmt.Sprintf("Total %d", comparison.Summary.CurrentYear),
		"Diferença", "Variação %", "Estoque atual", "Preço médio",
	}
	if err := writeRow(file, comparisonSheet, 1, header); err != nil {
		return "", err
	}

	for i, row := range comparison.Rows {
		values := []interface{}{
			row.ASIN,
			joinSKUs(row.SKUs),
			row.TotalPrevious,
			row.TotalCurrent,
			row.Difference,
			row.ChangePct,
			row.CurrentQuantity,
			row.AveragePrice.InexactFloat64(),
		}
		if err := writeRow(file, comparisonSheet, i+2, values); err != nil {
			return "", err
		}
	}

	if _, err := file.NewSheet(skuSheet); err != nil {
		return "", errors.Wrap(err, "criando aba de SKUs")
	}

	skuHeader := []interface{}{
		"SKU", "ASIN",
		fmt.Sprintf("Total %d", comparison.Summary.PreviousYear),
		fmt.Sprintf("Total %d", comparison.Summary.CurrentYear),
		"Diferença", "Variação %", "Estoque atual", "Preço atual",
	}
	if err := writeRow(file, skuSheet, 1, skuHeader); err != nil {
		return "", err
	}

	for i, row := range comparison.SKURows {
		values := []interface{}{
			row.SKU,
			row.ASIN,
			row.TotalPrevious,
			row.TotalCurrent,
			row.Difference,
			row.ChangePct,
			row.CurrentQuantity,
			row.CurrentPrice.InexactFloat64(),
		}
		if err := writeRow(file, skuSheet, i+2, values); err != nil {
			return "", err
		}
	}

	name := fmt.Sprintf("comparacao_%d_vs_%d_%s.xlsx",
		comparison.Summary.CurrentYear,
		comparison.Summary.PreviousYear,
		time.Now().UTC().Format(time.DateOnly),
	)

	return w.save(file, name)
}

func (w *ExcelWriter) writeResults(file *excelize.File, run *domain.AnalysisRun) error {
	header := make([]interface{}, 0, len(csvHeader))
	for _, column := range csvHeader {
		header = append(header, column)
	}
	if err := writeRow(file, resultsSheet, 1, header); err != nil {
		return err
	}

	for i, result := range run.Results {
		values := []interface{}{
			result.Product.SKU,
			result.Product.ASIN,
			result.EstimatedStartingInventory,
			result.UnitsSold,
			pctCell(result.SellThroughPct),
			result.TargetPct,
			pctCell(result.GapPct),
			string(result.Grade),
			string(result.Action),
			pctCell(result.SuggestedPct),
			notes(result),
		}
		if err := writeRow(file, resultsSheet, i+2, values); err != nil {
			return err
		}
	}

	return nil
}

func (w *ExcelWriter) writeDiagnostics(file *excelize.File, run *domain.AnalysisRun) error {
	if _, err := file.NewSheet(diagnosticsSheet); err != nil {
		return errors.Wrap(err, "criando aba de diagnóstico")
	}

	rows := [][]interface{}{
		{"Execução", run.ID},
		{"Modo", string(run.Mode)},
		{"Temporada", run.SeasonYear},
		{"Semana", run.Week},
		{"Data de referência", run.ReferenceDate.Format(time.DateOnly)},
		{"Vendas não associadas", run.Diagnostics.UnmatchedSales},
		{"Registros de venda pulados", run.Diagnostics.SkippedSaleRecords},
		{"Produtos com estoque inicial zero", run.Diagnostics.ZeroInventoryProducts},
		{"Estimativas clampadas", run.Diagnostics.ClampedEstimates},
	}

	for i, row := range rows {
		if err := writeRow(file, diagnosticsSheet, i+1, row); err != nil {
			return err
		}
	}

	return nil
}

func (w *ExcelWriter) save(file *excelize.File, name string) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "criando diretório de relatórios")
	}

	path := filepath.Join(w.outputDir, name)
	if err := file.SaveAs(path); err != nil {
		return "", errors.Wrap(err, "salvando planilha")
	}

	return path, nil
}

func writeRow(file *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "resolvendo coordenada da planilha")
	}

	if err := file.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrap(err, "escrevendo linha da planilha")
	}

	return nil
}

// pctCell mantém números como números na planilha e usa N/A apenas para o
// indefinido.
func pctCell(value *float64) interface{} {
	if value == nil {
		return undefinedCell
	}
	return *value
}

func joinSKUs(skus []string) string {
	out := ""
	for i, sku := range skus {
		if i > 0 {
			out += ", "
		}
		out += sku
	}
	return out
}
