package scheduler

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/season-pricing-api/infrastructure/loader"
	"github.com/vfg2006/season-pricing-api/infrastructure/report"
	"github.com/vfg2006/season-pricing-api/internal/config"
	"github.com/vfg2006/season-pricing-api/internal/usecases/aggregating"
	"github.com/vfg2006/season-pricing-api/internal/usecases/analyzing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/matching"
	"github.com/vfg2006/season-pricing-api/internal/usecases/pricing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/reporting"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
	"github.com/vfg2006/season-pricing-api/pkg/log"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

type testEnv struct {
	cfg       *config.Config
	outputDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dataDir := t.TempDir()
	outputDir := t.TempDir()

	inventoryFile := filepath.Join(dataDir, "Inventory.txt")
	require.NoError(t, os.WriteFile(inventoryFile, []byte(
		"seller-sku\tasin1\tprice\tquantity\n"+
			"SKU-1\tB000000001\t19.90\t50\n",
	), 0o600))

	salesDir := filepath.Join(dataDir, "sales")
	require.NoError(t, os.MkdirAll(salesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(salesDir, "9-2026.txt"), []byte(
		"sku\tasin\tpurchase-date\tquantity\n"+
			"SKU-1\tB000000001\t2026-09-05\t10\n",
	), 0o600))

	cfg := &config.Config{}
	cfg.DataSources.InventoryFile = inventoryFile
	cfg.DataSources.SalesDir = salesDir
	cfg.DailyPricingSync.CronSchedule = "0 5 * * *"
	cfg.WeeklyGradingSync.CronSchedule = "0 6 * * 1"

	return &testEnv{cfg: cfg, outputDir: outputDir}
}

func newTestReporter() reporting.Reporter {
	return reporting.NewService(
		season.NewService(),
		matching.NewService(),
		aggregating.NewService(),
		analyzing.NewService(),
		pricing.NewService(rand.New(rand.NewSource(7))),
		nil,
	)
}

func reportFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestDailyPricingService_RunForDate(t *testing.T) {
	t.Run("Deve gerar relatórios CSV e XLSX para data dentro da temporada", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewDailyPricingService(
			loader.NewInventoryLoader(),
			loader.NewSalesLoader(),
			newTestReporter(),
			report.NewCSVWriter(env.outputDir),
			report.NewExcelWriter(env.outputDir),
			env.cfg,
		)

		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)
		require.NoError(t, service.runForDate(referenceDate))

		files := reportFiles(t, env.outputDir)
		require.Len(t, files, 2)
		assert.Contains(t, files[0], "daily_2026-09-16")
	})

	t.Run("Deve ignorar a execução fora da temporada sem erro", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewDailyPricingService(
			loader.NewInventoryLoader(),
			loader.NewSalesLoader(),
			newTestReporter(),
			report.NewCSVWriter(env.outputDir),
			report.NewExcelWriter(env.outputDir),
			env.cfg,
		)

		referenceDate := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)
		require.NoError(t, service.runForDate(referenceDate))
		assert.Empty(t, reportFiles(t, env.outputDir))
	})

	t.Run("Deve propagar erro quando o snapshot de estoque é ilegível", func(t *testing.T) {
		env := newTestEnv(t)
		env.cfg.DataSources.InventoryFile = filepath.Join(t.TempDir(), "nao-existe.txt")

		service := NewDailyPricingService(
			loader.NewInventoryLoader(),
			loader.NewSalesLoader(),
			newTestReporter(),
			report.NewCSVWriter(env.outputDir),
			report.NewExcelWriter(env.outputDir),
			env.cfg,
		)

		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)
		err := service.runForDate(referenceDate)
		require.Error(t, err)
		assert.True(t, loader.IsUnreadableSource(err))
	})
}

func TestWeeklyGradingService_RunForDate(t *testing.T) {
	t.Run("Deve avaliar a última semana concluída", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewWeeklyGradingService(
			loader.NewInventoryLoader(),
			loader.NewSalesLoader(),
			newTestReporter(),
			report.NewCSVWriter(env.outputDir),
			report.NewExcelWriter(env.outputDir),
			env.cfg,
		)

		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)
		require.NoError(t, service.runForDate(referenceDate))

		files := reportFiles(t, env.outputDir)
		require.Len(t, files, 2)
		assert.Contains(t, files[0], "weekly_2026-09-16")
	})

	t.Run("Deve ignorar a execução na primeira semana sem erro", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewWeeklyGradingService(
			loader.NewInventoryLoader(),
			loader.NewSalesLoader(),
			newTestReporter(),
			report.NewCSVWriter(env.outputDir),
			report.NewExcelWriter(env.outputDir),
			env.cfg,
		)

		referenceDate := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
		require.NoError(t, service.runForDate(referenceDate))
		assert.Empty(t, reportFiles(t, env.outputDir))
	})

	t.Run("Deve manter o status do agendador consistente", func(t *testing.T) {
		env := newTestEnv(t)
		service := NewWeeklyGradingService(
			loader.NewInventoryLoader(),
			loader.NewSalesLoader(),
			newTestReporter(),
			report.NewCSVWriter(env.outputDir),
			report.NewExcelWriter(env.outputDir),
			env.cfg,
		)

		status := service.GetStatus()
		assert.Equal(t, false, status["sync_enabled"])
		assert.Equal(t, "0 6 * * 1", status["sync_cron"])
	})
}
