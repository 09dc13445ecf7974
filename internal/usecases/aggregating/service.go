package aggregating

import (
	"time"

	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
)

// Aggregator soma as unidades vendidas de um conjunto de vendas associadas,
// restrito a um intervalo de datas inclusivo em ambas as pontas.
type Aggregator interface {
	AggregateUnits(matched []domain.MatchedSale, from, to time.Time) *Aggregation
}

// Aggregation é o resultado de uma soma de unidades. Skipped conta os
// registros descartados por data ausente ou malformada; tolerância a falha
// parcial, nunca aborta o lote.
type Aggregation struct {
	Units   int
	Skipped int
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// AggregateUnits soma as quantidades dos registros cuja data de compra cai
// dentro de [from, to]. Um conjunto vazio soma zero; registros sem data
// válida são pulados com aviso.
func (s *Service) AggregateUnits(matched []domain.MatchedSale, from, to time.Time) *Aggregation {
	agg := &Aggregation{}

	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	for _, m := range matched {
		if m.Sale.PurchaseDate == nil {
			agg.Skipped++
			log.L.WithFields(log.Fields{
				"sku":  m.Sale.SKU,
				"asin": m.Sale.ASIN,
			}).Warn("venda sem data de compra válida descartada da agregação")
			continue
		}

		day := truncateToDay(*m.Sale.PurchaseDate)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}

		agg.Units += m.Sale.Quantity
	}

	return agg
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
