package pricing

import (
	"math/rand"
	"time"

	"github.com/vfg2006/season-pricing-api/internal/domain"
	"github.com/vfg2006/season-pricing-api/pkg/utils"
)

// Decider mapeia um desvio de sell-through para uma ação de preço e uma
// faixa de ajuste sugerida. Usado apenas pelo fluxo diário.
type Decider interface {
	Decide(gapPct float64) *Decision
}

// Decision é a recomendação final por produto.
type Decision struct {
	Action       domain.PricingAction
	Adjustment   domain.AdjustmentRange
	SuggestedPct float64
}

// adjustments define a faixa percentual sugerida de cada ação.
var adjustments = map[domain.PricingAction]domain.AdjustmentRange{
	domain.ActionAggressiveDiscount: {Direction: domain.AdjustmentReduction, MinPct: 15, MaxPct: 25},
	domain.ActionModerateDiscount:   {Direction: domain.AdjustmentReduction, MinPct: 8, MaxPct: 15},
	domain.ActionHoldSteady:         {Direction: domain.AdjustmentNone},
	domain.ActionModerateIncrease:   {Direction: domain.AdjustmentIncrease, MinPct: 5, MaxPct: 12},
	domain.ActionPremiumPricing:     {Direction: domain.AdjustmentIncrease, MinPct: 12, MaxPct: 20},
}

// Service é computação pura sobre o gap; o único estado é a fonte
// pseudo-aleatória injetada que sorteia o percentual dentro da faixa.
type Service struct {
	rng *rand.Rand
}

// NewService cria o motor de decisão. A fonte aleatória é injetável para que
// testes e reprocessamentos possam fixar a semente; com nil, usa o relógio.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Service{rng: rng}
}

// Decide seleciona a ação pela faixa do gap e sorteia uniformemente o
// percentual sugerido dentro dela. A variação entre execuções é
// intencional: evita movimentos de preço mecanicamente idênticos em dias
// seguidos.
//
// Os cortes (−20, −10, 10, 25) divergem de propósito dos cortes de nota
// (−25, −10, 10, 25): o corte inferior de preço é mais conservador que o de
// nota. Decisão de negócio, não unificar.
func (s *Service) Decide(gapPct float64) *Decision {
	var action domain.PricingAction

	switch {
	case gapPct > 25:
		action = domain.ActionPremiumPricing
	case gapPct > 10:
		action = domain.ActionModerateIncrease
	case gapPct >= -10:
		action = domain.ActionHoldSteady
	case gapPct >= -20:
		action = domain.ActionModerateDiscount
	default:
		action = domain.ActionAggressiveDiscount
	}

	adjustment := adjustments[action]

	return &Decision{
		Action:       action,
		Adjustment:   adjustment,
		SuggestedPct: s.draw(adjustment),
	}
}

func (s *Service) draw(adj domain.AdjustmentRange) float64 {
	if adj.Direction == domain.AdjustmentNone {
		return 0
	}

	pct := adj.MinPct + s.rng.Float64()*(adj.MaxPct-adj.MinPct)
	return utils.RoundWithTwoDecimalPlace(pct)
}
