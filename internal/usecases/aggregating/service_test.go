package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/season-pricing-api/internal/domain"
)

func saleOn(y int, m time.Month, d, quantity int) domain.MatchedSale {
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return domain.MatchedSale{
		Sale: domain.SaleRecord{SKU: "SKU123", PurchaseDate: &date, Quantity: quantity},
		Kind: domain.MatchedBySKU,
	}
}

func TestService_AggregateUnits(t *testing.T) {
	service := NewService()

	from := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		matched         []domain.MatchedSale
		expectedUnits   int
		expectedSkipped int
	}{
		{
			name:          "Conjunto vazio soma zero sem falhar",
			matched:       nil,
			expectedUnits: 0,
		},
		{
			name: "Soma quantidades dentro do intervalo",
			matched: []domain.MatchedSale{
				saleOn(2025, time.September, 2, 3),
				saleOn(2025, time.September, 5, 2),
			},
			expectedUnits: 5,
		},
		{
			name: "Intervalo é inclusivo em ambas as pontas",
			matched: []domain.MatchedSale{
				saleOn(2025, time.September, 1, 1),
				saleOn(2025, time.September, 7, 1),
			},
			expectedUnits: 2,
		},
		{
			name: "Vendas fora do intervalo são ignoradas",
			matched: []domain.MatchedSale{
				saleOn(2025, time.August, 31, 10),
				saleOn(2025, time.September, 8, 10),
				saleOn(2025, time.September, 3, 4),
			},
			expectedUnits: 4,
		},
		{
			name: "Venda sem data é pulada com aviso, não aborta",
			matched: []domain.MatchedSale{
				{Sale: domain.SaleRecord{SKU: "SKU123", Quantity: 7}, Kind: domain.MatchedBySKU},
				saleOn(2025, time.September, 3, 2),
			},
			expectedUnits:   2,
			expectedSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := service.AggregateUnits(tt.matched, from, to)

			assert.Equal(t, tt.expectedUnits, agg.Units)
			assert.Equal(t, tt.expectedSkipped, agg.Skipped)
		})
	}
}

func TestService_AggregateUnits_ComparaApenasAData(t *testing.T) {
	service := NewService()

	// Venda com horário no fim do dia limite ainda pertence ao intervalo.
	ts := time.Date(2025, time.September, 7, 23, 59, 59, 0, time.UTC)
	matched := []domain.MatchedSale{
		{Sale: domain.SaleRecord{SKU: "SKU123", PurchaseDate: &ts, Quantity: 2}, Kind: domain.MatchedBySKU},
	}

	from := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.September, 7, 0, 0, 0, 0, time.UTC)

	agg := service.AggregateUnits(matched, from, to)
	assert.Equal(t, 2, agg.Units)
}
