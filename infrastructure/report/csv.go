package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
)

// undefinedCell é o que vai para a planilha quando o sell-through é
// matematicamente indefinido (estoque inicial zero).
const undefinedCell = "N/A"

var csvHeader = []string{
	"sku",
	"asin",
	"estoque_inicial_estimado",
	"unidades_vendidas",
	"sell_through_pct",
	"meta_pct",
	"gap_pct",
	"nota",
	"acao",
	"ajuste_sugerido_pct",
	"observacoes",
}

type CSVWriter struct {
	outputDir string
}

func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{outputDir: outputDir}
}

// Write grava a execução em um arquivo CSV com nome carimbado pela data e
// pelo identificador da execução, e retorna o caminho gerado.
func (w *CSVWriter) Write(run *domain.AnalysisRun) (string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", errors.Wrap(err, "criando diretório de relatórios")
	}

	path := filepath.Join(w.outputDir, reportFileName(run, "csv"))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "criando arquivo de relatório")
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(csvHeader); err != nil {
		return "", errors.Wrap(err, "escrevendo cabeçalho do relatório")
	}

	for _, result := range run.Results {
		if err := writer.Write(csvRow(result)); err != nil {
			return "", errors.Wrap(err, "escrevendo linha do relatório")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", errors.Wrap(err, "finalizando relatório CSV")
	}

	log.L.WithFields(log.Fields{
		"run_id": run.ID,
		"file":   path,
		"rows":   len(run.Results),
	}).Info("Relatório CSV gerado")

	return path, nil
}

func csvRow(result *domain.PerformanceResult) []string {
	row := []string{
		result.Product.SKU,
		result.Product.ASIN,
		strconv.Itoa(result.EstimatedStartingInventory),
		strconv.Itoa(result.UnitsSold),
		formatPct(result.SellThroughPct),
		strconv.FormatFloat(result.TargetPct, 'f', 1, 64),
		formatPct(result.GapPct),
		string(result.Grade),
		string(result.Action),
		formatPct(result.SuggestedPct),
		notes(result),
	}

	return row
}

func formatPct(value *float64) string {
	if value == nil {
		return undefinedCell
	}
	return strconv.FormatFloat(*value, 'f', 2, 64)
}

func notes(result *domain.PerformanceResult) string {
	switch {
	case result.SellThroughUndefined:
		return "estoque inicial estimado zero"
	case result.InventoryClamped:
		return "estimativa de estoque clampada para zero"
	default:
		return ""
	}
}

// reportFileName monta "daily_2026-09-16_Ab3xYz.csv".
func reportFileName(run *domain.AnalysisRun, extension string) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		run.Mode,
		run.ReferenceDate.Format(time.DateOnly),
		run.ID,
		extension,
	)
}
