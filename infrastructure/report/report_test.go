package report

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func sampleRun() *domain.AnalysisRun {
	sellThrough := 44.44
	gap := 40.64
	suggested := 15.5

	return &domain.AnalysisRun{
		ID:            "Ab3xYz",
		Mode:          domain.RunModeDaily,
		SeasonYear:    2026,
		Week:          3,
		ReferenceDate: time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC),
		Results: []*domain.PerformanceResult{
			{
				Product:                    domain.ProductKey{SKU: "SKU-1", ASIN: "B01"},
				EstimatedStartingInventory: 90,
				UnitsSold:                  40,
				SellThroughPct:             &sellThrough,
				TargetPct:                  3.8,
				GapPct:                     &gap,
				Grade:                      domain.GradeExcellent,
				Action:                     domain.ActionPremiumPricing,
				SuggestedPct:               &suggested,
			},
			{
				Product:              domain.ProductKey{SKU: "SKU-Z", ASIN: "B09"},
				TargetPct:            3.8,
				Grade:                domain.GradeUndefined,
				SellThroughUndefined: true,
			},
		},
		Diagnostics: domain.RunDiagnostics{
			UnmatchedSales:        2,
			ZeroInventoryProducts: 1,
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	t.Run("Deve gravar cabeçalho, linhas e N/A para o indefinido", func(t *testing.T) {
		writer := NewCSVWriter(t.TempDir())

		path, err := writer.Write(sampleRun())
		require.NoError(t, err)
		assert.Contains(t, path, "daily_2026-09-16_Ab3xYz.csv")

		file, err := os.Open(path)
		require.NoError(t, err)
		defer file.Close()

		rows, err := csv.NewReader(file).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)

		assert.Equal(t, csvHeader, rows[0])

		assert.Equal(t, "SKU-1", rows[1][0])
		assert.Equal(t, "44.44", rows[1][4])
		assert.Equal(t, "EXCELLENT", rows[1][7])
		assert.Equal(t, "PREMIUM_PRICING", rows[1][8])

		assert.Equal(t, "N/A", rows[2][4])
		assert.Equal(t, "N/A", rows[2][6])
		assert.Equal(t, "N/A", rows[2][9])
		assert.Equal(t, "estoque inicial estimado zero", rows[2][10])
	})

	t.Run("Deve criar o diretório de saída quando não existe", func(t *testing.T) {
		writer := NewCSVWriter(t.TempDir() + "/relatorios/novos")

		path, err := writer.Write(sampleRun())
		require.NoError(t, err)
		_, err = os.Stat(path)
		require.NoError(t, err)
	})
}

func TestExcelWriter_Write(t *testing.T) {
	t.Run("Deve gravar as abas de resultados e diagnóstico", func(t *testing.T) {
		writer := NewExcelWriter(t.TempDir())

		path, err := writer.Write(sampleRun())
		require.NoError(t, err)

		file, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer file.Close()

		assert.Contains(t, file.GetSheetList(), resultsSheet)
		assert.Contains(t, file.GetSheetList(), diagnosticsSheet)

		sku, err := file.GetCellValue(resultsSheet, "A2")
		require.NoError(t, err)
		assert.Equal(t, "SKU-1", sku)

		undefined, err := file.GetCellValue(resultsSheet, "E3")
		require.NoError(t, err)
		assert.Equal(t, "N/A", undefined)

		unmatched, err := file.GetCellValue(diagnosticsSheet, "B6")
		require.NoError(t, err)
		assert.Equal(t, "2", unmatched)
	})
}

func TestExcelWriter_ExportRun(t *testing.T) {
	t.Run("Deve serializar a planilha em memória", func(t *testing.T) {
		writer := NewExcelWriter(t.TempDir())

		payload, err := writer.ExportRun(sampleRun())
		require.NoError(t, err)
		assert.NotEmpty(t, payload)
	})
}
