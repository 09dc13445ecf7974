package analyzing

import (
	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/log"
	"github.com/vfg2006/season-pricing-api/pkg/utils"
)

// Analyzer calcula o sell-through de um produto e o compara com a meta
// semanal, produzindo uma nota de desempenho.
type Analyzer interface {
	EstimateStartingInventory(currentQuantity, seasonToDateSold int) (int, bool)
	AnalyzeGap(unitsSold, estimatedStartingInventory, week int) (*Analysis, error)
}

// Analysis é o resultado da comparação contra a meta. SellThroughPct e
// GapPct são nil quando o estoque inicial estimado é zero: o valor é
// matematicamente indefinido e nunca deve ser substituído por um padrão.
//
// RawGapPct carrega o desvio sem arredondamento. As faixas de nota e de
// ação de preço são definidas sobre o valor exato; GapPct arredondado serve
// apenas para exibição e persistência. Válido somente quando !Undefined.
type Analysis struct {
	SellThroughPct *float64
	TargetPct      float64
	GapPct         *float64
	RawGapPct      float64
	Grade          domain.Grade
	Undefined      bool
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// EstimateStartingInventory reconstrói o estoque do início da temporada:
// o estoque atual já reflete a depleção, então somar de volta tudo que foi
// vendido desde 1 de setembro recupera o nível pré-temporada.
//
// O segundo retorno indica que o valor calculado era negativo e foi
// clampado para zero, o que aponta inconsistência nos dados de entrada.
func (s *Service) EstimateStartingInventory(currentQuantity, seasonToDateSold int) (int, bool) {
	estimated := currentQuantity + seasonToDateSold
	if estimated < 0 {
		log.L.WithFields(log.Fields{
			"current_quantity":    currentQuantity,
			"season_to_date_sold": seasonToDateSold,
		}).Warn("estoque inicial estimado negativo; clampado para zero")
		return 0, true
	}

	return estimated, false
}

// AnalyzeGap calcula o sell-through percentual, o desvio em pontos
// percentuais contra a meta da semana e a nota correspondente.
func (s *Service) AnalyzeGap(unitsSold, estimatedStartingInventory, week int) (*Analysis, error) {
	target, err := TargetPct(week)
	if err != nil {
		return nil, err
	}

	if estimatedStartingInventory == 0 {
		// Divisão indefinida: reporta N/A, nunca divide nem inventa zero.
		return &Analysis{
			TargetPct: target,
			Grade:     domain.GradeUndefined,
			Undefined: true,
		}, nil
	}

	sellThrough := 100 * float64(unitsSold) / float64(estimatedStartingInventory)
	gap := sellThrough - target

	sellThroughRounded := utils.RoundWithTwoDecimalPlace(sellThrough)
	gapRounded := utils.RoundWithTwoDecimalPlace(gap)

	return &Analysis{
		SellThroughPct: &sellThroughRounded,
		TargetPct:      target,
		GapPct:         &gapRounded,
		RawGapPct:      gap,
		Grade:          classify(gap),
	}, nil
}

// classify aplica as faixas de nota na ordem especificada; os limites
// pertencem à faixa superior (gap de exatamente 25 é GOOD, exatamente −25 é
// BELOW_TARGET).
func classify(gapPct float64) domain.Grade {
	switch {
	case gapPct > 25:
		return domain.GradeExcellent
	case gapPct > 10:
		return domain.GradeGood
	case gapPct >= -10:
		return domain.GradeOnTarget
	case gapPct >= -25:
		return domain.GradeBelowTarget
	default:
		return domain.GradePoor
	}
}
