package reporting

import (
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/season-pricing-api/infrastructure/repository"
	"github.com/vfg2006/season-pricing-api/infrastructure/repository/mocks"
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/internal/usecases/aggregating"
	"github.com/vfg2006/season-pricing-api/internal/usecases/analyzing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/matching"
	"github.com/vfg2006/season-pricing-api/internal/usecases/pricing"
	"github.com/vfg2006/season-pricing-api/internal/usecases/season"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger()
	os.Exit(m.Run())
}

func newTestService(runRepo repository.AnalysisRunRepository) *Service {
	return NewService(
		season.NewService(),
		matching.NewService(),
		aggregating.NewService(),
		analyzing.NewService(),
		pricing.NewService(rand.New(rand.NewSource(42))),
		runRepo,
	)
}

func saleOn(sku, asin string, date time.Time, quantity int) domain.SaleRecord {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return domain.SaleRecord{SKU: sku, ASIN: asin, PurchaseDate: &day, Quantity: quantity}
}

func TestService_RunDaily(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{SKU: "SKU-1", ASIN: "B01", Price: decimal.RequireFromString("19.90"), Quantity: 50},
	}

	t.Run("Deve produzir resultado com nota e recomendação de preço", func(t *testing.T) {
		service := newTestService(nil)

		// Semana 3: meta de 3.8%. 40 vendidas de 90 estimadas = 44.44%.
		sales := []domain.SaleRecord{
			saleOn("SKU-1", "B01", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), 40),
		}
		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)

		run, err := service.RunDaily(inventory, sales, referenceDate)
		require.NoError(t, err)

		assert.Equal(t, domain.RunModeDaily, run.Mode)
		assert.Equal(t, 2026, run.SeasonYear)
		assert.Equal(t, 3, run.Week)
		assert.NotEmpty(t, run.ID)

		require.Len(t, run.Results, 1)
		result := run.Results[0]
		assert.Equal(t, 90, result.EstimatedStartingInventory)
		assert.Equal(t, 40, result.UnitsSold)
		require.NotNil(t, result.SellThroughPct)
		assert.InDelta(t, 44.44, *result.SellThroughPct, 0.01)
		require.NotNil(t, result.GapPct)
		assert.InDelta(t, 40.64, *result.GapPct, 0.01)
		assert.Equal(t, domain.GradeExcellent, result.Grade)

		assert.Equal(t, domain.ActionPremiumPricing, result.Action)
		require.NotNil(t, result.SuggestedPct)
		assert.GreaterOrEqual(t, *result.SuggestedPct, 12.0)
		assert.LessOrEqual(t, *result.SuggestedPct, 20.0)
	})

	t.Run("Deve decidir o preço pelo desvio exato, não pelo arredondado", func(t *testing.T) {
		service := newTestService(nil)

		// Semana 1: 2720 vendidas de 9999 estimadas dá desvio de 25.00272,
		// que arredonda para 25.00. A nota e a ação devem concordar no lado
		// de cima do limite de 25.
		boundaryInventory := []domain.InventoryRecord{
			{SKU: "SKU-B", ASIN: "B02", Quantity: 7279},
		}
		sales := []domain.SaleRecord{
			saleOn("SKU-B", "B02", time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC), 2720),
		}
		referenceDate := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)

		run, err := service.RunDaily(boundaryInventory, sales, referenceDate)
		require.NoError(t, err)

		require.Len(t, run.Results, 1)
		result := run.Results[0]
		assert.Equal(t, 9999, result.EstimatedStartingInventory)
		require.NotNil(t, result.GapPct)
		assert.InDelta(t, 25.00, *result.GapPct, 0.001)
		assert.Equal(t, domain.GradeExcellent, result.Grade)
		assert.Equal(t, domain.ActionPremiumPricing, result.Action)
	})

	t.Run("Deve aplicar desconto agressivo quando o desvio exato fica abaixo de -20", func(t *testing.T) {
		service := newTestService(nil)

		// Semana 7: 1999 vendidas de 25000 estimadas dá sell-through de
		// 7.996% e desvio de -20.004, que arredonda para -20.00.
		boundaryInventory := []domain.InventoryRecord{
			{SKU: "SKU-C", ASIN: "B03", Quantity: 23001},
		}
		sales := []domain.SaleRecord{
			saleOn("SKU-C", "B03", time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC), 1999),
		}
		referenceDate := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

		run, err := service.RunDaily(boundaryInventory, sales, referenceDate)
		require.NoError(t, err)

		require.Len(t, run.Results, 1)
		result := run.Results[0]
		require.NotNil(t, result.GapPct)
		assert.InDelta(t, -20.00, *result.GapPct, 0.001)
		assert.Equal(t, domain.ActionAggressiveDiscount, result.Action)
		require.NotNil(t, result.Adjustment)
		assert.Equal(t, domain.AdjustmentReduction, result.Adjustment.Direction)
	})

	t.Run("Deve ignorar vendas posteriores à data de referência", func(t *testing.T) {
		service := newTestService(nil)

		sales := []domain.SaleRecord{
			saleOn("SKU-1", "B01", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), 10),
			saleOn("SKU-1", "B01", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), 30),
		}
		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)

		run, err := service.RunDaily(inventory, sales, referenceDate)
		require.NoError(t, err)

		require.Len(t, run.Results, 1)
		assert.Equal(t, 10, run.Results[0].UnitsSold)
		assert.Equal(t, 60, run.Results[0].EstimatedStartingInventory)
	})

	t.Run("Deve reportar N/A sem recomendação para estoque inicial zero", func(t *testing.T) {
		service := newTestService(nil)

		zeroInventory := []domain.InventoryRecord{{SKU: "SKU-Z", ASIN: "B09", Quantity: 0}}
		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)

		run, err := service.RunDaily(zeroInventory, nil, referenceDate)
		require.NoError(t, err)

		require.Len(t, run.Results, 1)
		result := run.Results[0]
		assert.True(t, result.SellThroughUndefined)
		assert.Equal(t, domain.GradeUndefined, result.Grade)
		assert.Nil(t, result.SellThroughPct)
		assert.Nil(t, result.GapPct)
		assert.Empty(t, result.Action)
		assert.Nil(t, result.SuggestedPct)
		assert.Equal(t, 1, run.Diagnostics.ZeroInventoryProducts)
	})

	t.Run("Deve contabilizar vendas não associadas como diagnóstico", func(t *testing.T) {
		service := newTestService(nil)

		sales := []domain.SaleRecord{
			saleOn("SKU-1", "B01", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), 2),
			saleOn("SKU-DESCONHECIDO", "B99", time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC), 1),
		}
		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)

		run, err := service.RunDaily(inventory, sales, referenceDate)
		require.NoError(t, err)

		assert.Equal(t, 1, run.Diagnostics.UnmatchedSales)
	})

	t.Run("Deve propagar erro de fora de temporada", func(t *testing.T) {
		service := newTestService(nil)

		_, err := service.RunDaily(inventory, nil, time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC))
		require.Error(t, err)
		assert.True(t, season.IsOutOfSeason(err))
	})

	t.Run("Deve persistir a execução quando há repositório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runRepo := mocks.NewMockAnalysisRunRepository(ctrl)
		service := newTestService(runRepo)

		runRepo.EXPECT().SaveOrUpdate(gomock.Any()).DoAndReturn(func(run *domain.AnalysisRun) error {
			assert.Equal(t, domain.RunModeDaily, run.Mode)
			assert.NotEmpty(t, run.ID)
			return nil
		})

		_, err := service.RunDaily(inventory, nil, time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
	})

	t.Run("Deve devolver os resultados mesmo quando a persistência falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		runRepo := mocks.NewMockAnalysisRunRepository(ctrl)
		service := newTestService(runRepo)

		runRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(assert.AnError)

		run, err := service.RunDaily(inventory, nil, time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, run.Results, 1)
	})
}

func TestService_RunWeekly(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{SKU: "SKU-1", ASIN: "B01", Price: decimal.RequireFromString("19.90"), Quantity: 50},
	}

	t.Run("Deve avaliar a semana explícita até o fim dela, sem preço", func(t *testing.T) {
		service := newTestService(nil)

		sales := []domain.SaleRecord{
			saleOn("SKU-1", "B01", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC), 3),
			// Fora da semana 2 (termina em 14/09); não entra na agregação.
			saleOn("SKU-1", "B01", time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC), 7),
		}
		referenceDate := time.Date(2026, time.September, 25, 0, 0, 0, 0, time.UTC)

		run, err := service.RunWeekly(inventory, sales, referenceDate, 2)
		require.NoError(t, err)

		assert.Equal(t, domain.RunModeWeekly, run.Mode)
		assert.Equal(t, 2, run.Week)

		require.Len(t, run.Results, 1)
		result := run.Results[0]
		assert.Equal(t, 3, result.UnitsSold)
		assert.Equal(t, 3.0, result.TargetPct)
		assert.Empty(t, result.Action)
		assert.Nil(t, result.Adjustment)
		assert.Nil(t, result.SuggestedPct)
	})

	t.Run("Deve avaliar a temporada encerrada quando a referência é novembro", func(t *testing.T) {
		service := newTestService(nil)

		sales := []domain.SaleRecord{
			saleOn("SKU-1", "B01", time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC), 5),
		}
		referenceDate := time.Date(2026, time.November, 10, 0, 0, 0, 0, time.UTC)

		run, err := service.RunWeekly(inventory, sales, referenceDate, 8)
		require.NoError(t, err)

		assert.Equal(t, 2026, run.SeasonYear)
		assert.Equal(t, 8, run.Week)
		require.Len(t, run.Results, 1)
		assert.Equal(t, 5, run.Results[0].UnitsSold)
	})

	t.Run("Deve avaliar a temporada do ano anterior após a virada do ano", func(t *testing.T) {
		service := newTestService(nil)

		// Execução retrospectiva em janeiro: a semana 8 pedida é a da
		// temporada de 2026, não uma janela futura de 2027.
		sales := []domain.SaleRecord{
			saleOn("SKU-1", "B01", time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC), 5),
		}
		referenceDate := time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC)

		run, err := service.RunWeekly(inventory, sales, referenceDate, 8)
		require.NoError(t, err)

		assert.Equal(t, 2026, run.SeasonYear)
		assert.Equal(t, 8, run.Week)
		require.Len(t, run.Results, 1)
		assert.Equal(t, 5, run.Results[0].UnitsSold)
	})

	t.Run("Deve usar a última semana concluída quando nenhuma é informada", func(t *testing.T) {
		service := newTestService(nil)

		// 16/09 está na semana 3; a última concluída é a 2.
		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)

		run, err := service.RunWeekly(inventory, nil, referenceDate, WeekLastCompleted)
		require.NoError(t, err)
		assert.Equal(t, 2, run.Week)
	})

	t.Run("Deve falhar na semana 1 quando nenhuma semana foi concluída", func(t *testing.T) {
		service := newTestService(nil)

		referenceDate := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)

		_, err := service.RunWeekly(inventory, nil, referenceDate, WeekLastCompleted)
		require.ErrorIs(t, err, season.ErrNoCompletedWeek)
	})

	t.Run("Deve rejeitar semana fora do intervalo", func(t *testing.T) {
		service := newTestService(nil)

		referenceDate := time.Date(2026, time.September, 16, 0, 0, 0, 0, time.UTC)

		_, err := service.RunWeekly(inventory, nil, referenceDate, 9)
		require.ErrorIs(t, err, season.ErrInvalidWeek)
	})
}
